package feed

import (
	"fmt"
	"slices"
)

// DefaultCategory is served when a category name is not recognized
const DefaultCategory = "Viral"

var defaultCategories = map[string][]string{
	"Hot": {
		"PublicFreakout", "nextfuckinglevel", "Damnthatsinteresting", "interestingasfuck",
		"BeAmazed", "toptalent", "Wellthatsucks", "Whatcouldgowrong", "IdiotsInCars",
		"CrazyFuckingVideos", "ActualPublicFreakouts", "instantkarma", "therewasanattempt",
		"SweatyPalms", "WinStupidPrizes", "blackmagicfuckery", "HumansAreMetal",
		"ContagiousLaughter", "FunnyAnimals",
		"holdmyjuicebox", "Funnymemes", "sports", "nba", "soccer", "MMA", "skateboarding",
		"CatastrophicFailure", "Roadcam", "TikTokCringe", "Unexpected",
	},
	"Viral": {
		"TikTokCringe", "Unexpected", "nextfuckinglevel", "BeAmazed", "MayBeMaybeMaybe",
		"funny", "WatchPeopleDieInside", "HoldMyBeer", "Instant_Regret", "NatureIsFuckingLit",
		"AnimalsBeingDerps", "Satisfying", "interestingasfuck", "Damnthatsinteresting",
		"OddlySatisfying", "WorldMusic", "Art", "Space", "Science", "Memes",
		"DankMemes", "WholesomeMemes", "Technology", "Gadgets", "Gaming",
		"Games", "PCMasterRace", "NintendoSwitch", "PS5", "XboxSeriesX",
		"MildlyInteresting", "HumansBeingBros", "MadeMeSmile", "Nonononoyes",
		"Aww", "EyeBleach", "AnimalsBeingBros", "JusticeServed", "PublicFreakout",
	},
}

// Registry maps category names to the subreddits they draw from.
// It is immutable after construction.
type Registry struct {
	categories map[string][]string
	fallback   string
}

// NewRegistry validates the mapping: every category needs at least one
// subreddit and the fallback must be one of them. Duplicate subreddits
// inside a category are dropped.
func NewRegistry(categories map[string][]string, fallback string) (*Registry, error) {
	r := &Registry{categories: make(map[string][]string, len(categories)), fallback: fallback}
	for name, subs := range categories {
		clean := dedupe(subs)
		if len(clean) == 0 {
			return nil, fmt.Errorf("category %q has no subreddits", name)
		}
		r.categories[name] = clean
	}
	if _, ok := r.categories[fallback]; !ok {
		return nil, fmt.Errorf("default category %q is not configured", fallback)
	}
	return r, nil
}

// DefaultRegistry returns the built-in Hot and Viral categories
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultCategories, DefaultCategory)
	if err != nil {
		panic(err)
	}
	return r
}

// WithOverrides returns a new registry where each overridden category
// replaces (or adds) its subreddit list.
func (r *Registry) WithOverrides(overrides map[string][]string, fallback string) (*Registry, error) {
	merged := make(map[string][]string, len(r.categories)+len(overrides))
	for name, subs := range r.categories {
		merged[name] = subs
	}
	for name, subs := range overrides {
		merged[name] = subs
	}
	if fallback == "" {
		fallback = r.fallback
	}
	return NewRegistry(merged, fallback)
}

// SourcesFor returns the category's subreddits, or the default
// category's when the name is unknown.
func (r *Registry) SourcesFor(category string) []string {
	subs, ok := r.categories[category]
	if !ok {
		subs = r.categories[r.fallback]
	}
	return slices.Clone(subs)
}

func (r *Registry) Has(category string) bool {
	_, ok := r.categories[category]
	return ok
}

func (r *Registry) Default() string {
	return r.fallback
}

// Categories lists category names in sorted order
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func dedupe(subs []string) []string {
	seen := make(map[string]bool, len(subs))
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
