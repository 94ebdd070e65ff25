package rerank

import (
	"strings"

	"shopSense/domain"
)

// Profile influence is ignored entirely below this confidence.
const minProfileConfidence = 0.1

// preferenceScore measures how well a product aligns with the stated intent
// and, when a confident behavior profile exists, the learned preferences.
// Profile adjustments scale with confidence so a thin history barely moves
// the score.
func preferenceScore(product domain.Product, intent domain.ParsedIntent, profile *domain.UserBehaviorProfile) float64 {
	score := 0.3

	score += intentAlignment(product, intent)

	if profile == nil {
		return clamp01(score)
	}
	confidence := profile.Confidence()
	if confidence < minProfileConfidence {
		return clamp01(score)
	}

	score += profileAlignment(product, intent, profile, confidence)

	return clamp01(score)
}

func intentAlignment(product domain.Product, intent domain.ParsedIntent) float64 {
	var adjust float64

	if len(intent.BrandPreferences) > 0 {
		if containsFold(intent.BrandPreferences, product.Brand) {
			adjust += 0.35
		} else {
			adjust -= 0.15
		}
	}

	if intent.EcoFriendly && product.EcoCertified {
		adjust += 0.15
	}

	if intent.Category != "" && strings.EqualFold(intent.Category, product.Category) {
		adjust += 0.10
	}

	description := strings.ToLower(product.Description)
	if intent.UseCase != "" && strings.Contains(description, strings.ToLower(intent.UseCase)) {
		adjust += 0.10
	}

	specs := strings.ToLower(specsText(product))
	for _, pref := range intent.Preferences {
		needle := strings.ToLower(pref)
		if needle == "" {
			continue
		}
		if strings.Contains(specs, needle) || strings.Contains(description, needle) {
			adjust += 0.05
		}
	}

	return adjust
}

func profileAlignment(product domain.Product, intent domain.ParsedIntent, profile *domain.UserBehaviorProfile, confidence float64) float64 {
	var adjust float64

	if affinity, ok := profile.CategoryAffinity[product.Category]; ok {
		maxAffinity := 0.0
		for _, a := range profile.CategoryAffinity {
			if a > maxAffinity {
				maxAffinity = a
			}
		}
		if maxAffinity > 0 {
			adjust += affinity / maxAffinity * 0.15 * confidence
		}
	}

	if containsFold(profile.PreferredBrands, product.Brand) {
		adjust += 0.15 * confidence
	} else if containsFold(profile.AvoidedBrands, product.Brand) {
		adjust -= 0.15 * confidence
	}

	if catProfile, ok := profile.CategoryProfiles[product.Category]; ok {
		catConfidence := profile.CategoryConfidence(product.Category)

		if containsFold(catProfile.PreferredBrands, product.Brand) {
			adjust += 0.12 * catConfidence
		} else if containsFold(catProfile.AvoidedBrands, product.Brand) {
			adjust -= 0.12 * catConfidence
		}

		if catProfile.AvgPrice > 0 && product.Price > 0 {
			diffRatio := abs(product.Price-catProfile.AvgPrice) / catProfile.AvgPrice
			if diffRatio < 0.3 {
				adjust += 0.10 * catConfidence
			} else if diffRatio > 1.0 {
				adjust -= 0.05 * catConfidence
			}
		}
	}

	if intent.MaxPrice > 0 && product.Price > 0 {
		ratio := product.Price / intent.MaxPrice
		sensitivity := profile.PriceSensitivity
		if sensitivity > 0.7 {
			if ratio > 0.7 {
				adjust += 0.08 * confidence
			} else if ratio < 0.3 {
				adjust -= 0.05 * confidence
			}
		} else if sensitivity < 0.3 {
			if ratio < 0.5 {
				adjust += 0.08 * confidence
			} else if ratio > 0.9 {
				adjust -= 0.05 * confidence
			}
		}
	}

	if abs(profile.EcoInterest) > 0.3 {
		if product.EcoCertified && profile.EcoInterest > 0 {
			adjust += 0.10 * confidence
		} else if !product.EcoCertified && profile.EcoInterest > 0.5 {
			adjust -= 0.05 * confidence
		}
	}

	return adjust
}

func specsText(product domain.Product) string {
	if len(product.Specs) == 0 {
		return ""
	}
	var sb strings.Builder
	for key, value := range product.Specs {
		sb.WriteString(key)
		sb.WriteByte(' ')
		if s, ok := value.(string); ok {
			sb.WriteString(s)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
