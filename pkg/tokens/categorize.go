package tokens

import "strings"

// Palette groups extracted colors into semantic buckets. Empty buckets are
// left nil so serialized output carries no empty-map noise.
type Palette struct {
	Primary   map[string]ColorToken            `json:"primary,omitempty"`
	Secondary map[string]ColorToken            `json:"secondary,omitempty"`
	Neutral   map[string]ColorToken            `json:"neutral,omitempty"`
	Semantic  map[string]map[string]ColorToken `json:"semantic,omitempty"`
	Other     map[string]ColorToken            `json:"other,omitempty"`
}

// Rule maps a bucket name to the keywords that select it.
type Rule struct {
	Bucket   string
	Keywords []string
}

// CategorizeConfig is the ordered keyword policy of the categorizer. Order is
// significant: a name matching several buckets lands in the first one listed,
// so "primary-warning" is a primary color, not a warning color.
type CategorizeConfig struct {
	Rules []Rule
}

// Semantic bucket names routed under Palette.Semantic.
const (
	BucketSuccess = "success"
	BucketWarning = "warning"
	BucketError   = "error"
	BucketInfo    = "info"
)

// DefaultCategorizeConfig returns the stock keyword policy.
func DefaultCategorizeConfig() CategorizeConfig {
	return CategorizeConfig{Rules: []Rule{
		{Bucket: "primary", Keywords: []string{"primary", "brand"}},
		{Bucket: "secondary", Keywords: []string{"secondary"}},
		{Bucket: "neutral", Keywords: []string{"neutral", "gray", "grey"}},
		{Bucket: BucketSuccess, Keywords: []string{"success", "green"}},
		{Bucket: BucketWarning, Keywords: []string{"warning", "yellow"}},
		{Bucket: BucketError, Keywords: []string{"error", "red", "danger"}},
		{Bucket: BucketInfo, Keywords: []string{"info", "blue"}},
	}}
}

// Categorize buckets colors by case-insensitive substring match of the
// token's name against the config's ordered rules; the first matching rule
// wins. Tokens matching nothing fall into Other. The function is pure: the
// input map is not modified and equal inputs produce equal palettes.
func Categorize(colors map[string]ColorToken, cfg CategorizeConfig) *Palette {
	p := &Palette{}

	for key, token := range colors {
		name := token.Name
		if name == "" {
			name = token.Key
		}
		p.assign(matchBucket(strings.ToLower(name), cfg), key, token)
	}

	return p
}

func matchBucket(lowerName string, cfg CategorizeConfig) string {
	for _, rule := range cfg.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowerName, kw) {
				return rule.Bucket
			}
		}
	}
	return "other"
}

func (p *Palette) assign(bucket, key string, token ColorToken) {
	switch bucket {
	case "primary":
		if p.Primary == nil {
			p.Primary = make(map[string]ColorToken)
		}
		p.Primary[key] = token
	case "secondary":
		if p.Secondary == nil {
			p.Secondary = make(map[string]ColorToken)
		}
		p.Secondary[key] = token
	case "neutral":
		if p.Neutral == nil {
			p.Neutral = make(map[string]ColorToken)
		}
		p.Neutral[key] = token
	case BucketSuccess, BucketWarning, BucketError, BucketInfo:
		if p.Semantic == nil {
			p.Semantic = make(map[string]map[string]ColorToken)
		}
		if p.Semantic[bucket] == nil {
			p.Semantic[bucket] = make(map[string]ColorToken)
		}
		p.Semantic[bucket][key] = token
	default:
		if p.Other == nil {
			p.Other = make(map[string]ColorToken)
		}
		p.Other[key] = token
	}
}
