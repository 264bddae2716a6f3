package ratelimit

import "time"

// Limit is a fixed-window request allowance for one endpoint category.
type Limit struct {
	Requests int           `json:"requests"`
	Window   time.Duration `json:"window"`
}

// Config holds per-category limits keyed by the route categories the
// middleware resolves.
type Config struct {
	Limits         map[string]Limit
	RedisKeyPrefix string
	Enabled        bool
}

// Endpoint categories.
const (
	CategoryAuthLogin   = "auth_login"
	CategoryGallery     = "gallery"
	CategoryMutation    = "vehicles_mutate"
	CategoryImageUpload = "images_upload"
	CategoryInquiry     = "inquiries"
	CategoryHealth      = "health"
	CategoryDefault     = "default"
)

// DefaultConfig returns the limits the dealership API ships with. Login is
// tight (it fronts the password gate), browsing is generous, mutations sit in
// between.
func DefaultConfig() *Config {
	return &Config{
		Limits: map[string]Limit{
			CategoryAuthLogin:   {Requests: 5, Window: time.Minute},
			CategoryGallery:     {Requests: 300, Window: time.Minute},
			CategoryMutation:    {Requests: 60, Window: time.Minute},
			CategoryImageUpload: {Requests: 30, Window: time.Minute},
			CategoryInquiry:     {Requests: 10, Window: time.Minute},
			CategoryHealth:      {Requests: 1000, Window: time.Minute},
			CategoryDefault:     {Requests: 120, Window: time.Minute},
		},
		RedisKeyPrefix: "ratelimit:",
		Enabled:        true,
	}
}

// LimitFor resolves the limit for a category, falling back to default.
func (c *Config) LimitFor(category string) Limit {
	if limit, ok := c.Limits[category]; ok {
		return limit
	}
	if limit, ok := c.Limits[CategoryDefault]; ok {
		return limit
	}
	return Limit{Requests: 120, Window: time.Minute}
}
