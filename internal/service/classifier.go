package service

import (
	"strings"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

const (
	// Confidence assigned to filename keyword hits.
	keywordConfidence = 0.75
	// Upper bound on candidates returned by a single classification.
	maxCandidates = 4
	// Aspect ratios below this indicate a tall, narrow photo, which is
	// treated as a beverage in a cup or glass rather than a plate.
	beverageAspectRatio = 0.7
)

// grainTerms are the staple labels that are mutually exclusive within a
// single result set. Matching is by substring, so "fried rice" and
// "sweet potato" count as grains too.
var grainTerms = []string{"rice", "white rice", "brown rice", "pasta", "couscous", "bread", "potato", "sweet potato", "noodles"}

// candidate is a label/confidence pair emitted by a rule.
type candidate struct {
	name       string
	confidence float64
}

// colorRule pairs a predicate over the color profile with a builder for
// the branch's candidates. Rules are evaluated in order; the first
// matching rule supplies the whole candidate list.
type colorRule struct {
	name    string
	matches func(p *types.ColorProfile) bool
	build   func(p *types.ColorProfile) []candidate
}

// beverageRule maps a color signature to a single drink label for
// tall/narrow images.
type beverageRule struct {
	matches    func(p *types.ColorProfile) bool
	name       string
	confidence float64
}

// HeuristicClassifier turns a color profile into ranked food
// candidates. The confidences are hand-tuned constants per branch, not
// calibrated probabilities; identical profiles always yield identical
// candidates.
type HeuristicClassifier struct {
	catalog   *Catalog
	rules     []colorRule
	beverages []beverageRule
}

// NewHeuristicClassifier builds the rule tables over the given catalog.
func NewHeuristicClassifier(catalog *Catalog) *HeuristicClassifier {
	return &HeuristicClassifier{
		catalog:   catalog,
		rules:     colorRules(),
		beverages: beverageRules(),
	}
}

// Classify maps a profile to at most four candidates. A filename hint
// that matches the keyword table short-circuits color analysis; the
// beverage override replaces everything when the image is tall and
// narrow. Each candidate carries an estimated portion.
func (hc *HeuristicClassifier) Classify(profile *types.ColorProfile, filenameHint string) []types.RecognitionCandidate {
	var cands []candidate

	if filenameHint != "" {
		if label, ok := hc.catalog.KeywordLabel(filenameHint); ok {
			cands = []candidate{{label, keywordConfidence}}
		}
	}

	if len(cands) == 0 {
		for _, rule := range hc.rules {
			if rule.matches(profile) {
				cands = rule.build(profile)
				break
			}
		}
	}

	cands = collapseGrains(cands)
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}

	if profile.AspectRatio < beverageAspectRatio {
		for _, rule := range hc.beverages {
			if rule.matches(profile) {
				cands = []candidate{{rule.name, rule.confidence}}
				break
			}
		}
	}

	out := make([]types.RecognitionCandidate, 0, len(cands))
	for _, c := range cands {
		out = append(out, types.RecognitionCandidate{
			Name:             c.name,
			Confidence:       c.confidence,
			EstimatedPortion: hc.catalog.EstimatePortion(c.name),
		})
	}
	return out
}

// collapseGrains keeps only the first grain/starch candidate, in
// emission order, dropping the rest. Ordering of the survivors is
// unchanged.
func collapseGrains(cands []candidate) []candidate {
	var out []candidate
	seenGrain := false
	for _, c := range cands {
		if isGrain(c.name) {
			if seenGrain {
				continue
			}
			seenGrain = true
		}
		out = append(out, c)
	}
	return out
}

func isGrain(name string) bool {
	name = strings.ToLower(name)
	for _, term := range grainTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func colorRules() []colorRule {
	return []colorRule{
		{
			// Green first: catches mloukhia and salads.
			name:    "green",
			matches: func(p *types.ColorProfile) bool { return p.Green > 20 },
			build: func(p *types.ColorProfile) []candidate {
				if p.Brown > 12 || p.Brightness < 120 {
					// Dark green with brown = mloukhia over rice.
					return []candidate{{"mloukhia", 0.92}, {"rice", 0.84}}
				}
				return []candidate{{"mixed salad", 0.91}, {"grilled chicken", 0.82}}
			},
		},
		{
			// Beige/cream dominant = a starch plate. Couscous carries a
			// tan tint, pasta a yellow one, rice stays white.
			name:    "starch",
			matches: func(p *types.ColorProfile) bool { return p.Beige > 25 || p.Cream > 30 },
			build: func(p *types.ColorProfile) []candidate {
				var cands []candidate
				switch {
				case p.White > 25:
					cands = []candidate{{"white rice", 0.95}}
				case p.Beige > 22 && p.Beige >= p.Cream:
					cands = []candidate{{"couscous", 0.92}}
				case p.Cream > 22 && p.Yellow > 8:
					cands = []candidate{{"pasta", 0.91}}
				case p.Cream > 22:
					cands = []candidate{{"white rice", 0.88}}
				default:
					cands = []candidate{{"pasta", 0.85}}
				}
				if p.Brown > 15 {
					cands = append(cands, candidate{"lamb", 0.85})
				} else if p.Red > 15 {
					cands = append(cands, candidate{"merguez", 0.83})
				}
				if p.Green > 10 {
					cands = append(cands, candidate{"mixed vegetables", 0.80})
				}
				return cands
			},
		},
		{
			name:    "white",
			matches: func(p *types.ColorProfile) bool { return p.White > 30 },
			build: func(p *types.ColorProfile) []candidate {
				cands := []candidate{{"white rice", 0.93}}
				if p.Brown > 10 {
					cands = append(cands, candidate{"grilled chicken", 0.88})
				}
				return cands
			},
		},
		{
			// Orange dominant = carrots, sweet potato or a sauced grain.
			name:    "orange",
			matches: func(p *types.ColorProfile) bool { return p.Orange > 20 },
			build: func(p *types.ColorProfile) []candidate {
				if p.Beige > 10 || p.Cream > 10 {
					cands := []candidate{{"couscous", 0.92}}
					if p.Brown > 10 || p.Red > 10 {
						cands = append(cands, candidate{"lamb", 0.85})
					}
					if p.Green > 5 {
						cands = append(cands, candidate{"mixed vegetables", 0.80})
					} else if p.Orange > 15 {
						cands = append(cands, candidate{"carrots", 0.78})
					}
					return cands
				}
				return []candidate{{"sweet potato", 0.91}, {"carrots", 0.87}}
			},
		},
		{
			// Red dominant = meat when dark, tomato when bright.
			name:    "red",
			matches: func(p *types.ColorProfile) bool { return p.Red > 20 },
			build: func(p *types.ColorProfile) []candidate {
				if p.Brightness < 100 {
					cands := []candidate{{"beef steak", 0.91}}
					if p.Beige > 10 || p.Cream > 10 {
						cands = append(cands, candidate{"rice", 0.82})
					}
					if p.Green > 8 {
						cands = append(cands, candidate{"mixed salad", 0.78})
					}
					return cands
				}
				if p.Beige > 8 || p.Cream > 8 {
					return []candidate{{"pasta", 0.90}, {"tomato sauce", 0.82}}
				}
				return []candidate{{"tomato", 0.90}, {"red bell pepper", 0.82}}
			},
		},
		{
			name:    "yellow",
			matches: func(p *types.ColorProfile) bool { return p.Yellow > 20 },
			build: func(p *types.ColorProfile) []candidate {
				cands := []candidate{{"scrambled eggs", 0.92}}
				if p.Red > 10 {
					cands = append(cands, candidate{"tomato", 0.80})
				}
				return cands
			},
		},
		{
			name:    "brown",
			matches: func(p *types.ColorProfile) bool { return p.Brown > 25 },
			build: func(p *types.ColorProfile) []candidate {
				if p.Brightness < 80 {
					return []candidate{{"mloukhia", 0.88}, {"rice", 0.82}}
				}
				cands := []candidate{{"grilled chicken", 0.91}}
				if p.Beige > 8 || p.Cream > 8 {
					cands = append(cands, candidate{"rice", 0.83})
				}
				return cands
			},
		},
		{
			// Nothing dominant: fall back on brightness tiers.
			name:    "default",
			matches: func(p *types.ColorProfile) bool { return true },
			build: func(p *types.ColorProfile) []candidate {
				switch {
				case p.Brightness > 180:
					return []candidate{{"rice", 0.88}, {"chicken", 0.84}}
				case p.Brightness > 120:
					return []candidate{{"pasta", 0.87}, {"grilled chicken", 0.83}}
				default:
					return []candidate{{"beef steak", 0.86}, {"mixed vegetables", 0.80}}
				}
			},
		},
	}
}

func beverageRules() []beverageRule {
	return []beverageRule{
		{func(p *types.ColorProfile) bool { return p.Red > 20 && p.Orange > 10 }, "fruit juice", 0.89},
		{func(p *types.ColorProfile) bool { return p.Orange > 25 && p.Brightness > 150 }, "orange juice", 0.90},
		{func(p *types.ColorProfile) bool { return p.Yellow > 20 }, "juice", 0.87},
		{func(p *types.ColorProfile) bool { return p.Green > 15 }, "smoothie", 0.88},
		{func(p *types.ColorProfile) bool { return p.Brightness > 150 }, "smoothie", 0.85},
		{func(p *types.ColorProfile) bool { return true }, "soup", 0.82},
	}
}
