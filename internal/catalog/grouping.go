package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// IPhoneBrand is the brand whose models are ranked by generation and tier.
const IPhoneBrand = "IPHONE"

type ModelGroup struct {
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
	Storages []string `json:"storages"`
	Count    int      `json:"count"`
}

// GroupByModel folds listings into one group per brand and model. Group membership,
// min/max and storages do not depend on input order; groups come back ordered by model.
func GroupByModel[T Listing](items []T) []ModelGroup {
	type key struct{ brand, model string }

	index := make(map[key]int)
	groups := make([]ModelGroup, 0)
	seen := make([]map[string]struct{}, 0)

	for _, item := range items {
		k := key{strings.ToUpper(item.ListingBrand()), item.ListingModel()}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ModelGroup{Brand: k.brand, Model: k.model, Storages: []string{}})
			seen = append(seen, make(map[string]struct{}))
		}

		g := &groups[i]
		g.Count++

		if s := item.ListingStorage(); s != "" {
			if _, dup := seen[i][s]; !dup {
				seen[i][s] = struct{}{}
				g.Storages = append(g.Storages, s)
			}
		}

		if price, ok := item.ListingPrice(); ok {
			if g.MinPrice == nil || price < *g.MinPrice {
				p := price
				g.MinPrice = &p
			}
			if g.MaxPrice == nil || price > *g.MaxPrice {
				p := price
				g.MaxPrice = &p
			}
		}
	}

	for i := range groups {
		sortStorages(groups[i].Storages)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].Brand != groups[b].Brand {
			return groups[a].Brand < groups[b].Brand
		}
		return groups[a].Model < groups[b].Model
	})
	return groups
}

var generationPattern = regexp.MustCompile(`IPHONE\s+(\d+)`)

// IPhoneSortKey ranks newer generations first and, within one generation,
// Pro Max, Pro, Plus, base, then the "e" model. Lower keys sort first.
func IPhoneSortKey(model string) int {
	m := strings.ToUpper(model)

	gen := 0
	if match := generationPattern.FindStringSubmatch(m); match != nil {
		gen, _ = strconv.Atoi(match[1])
	}

	tier := 3
	switch {
	case strings.Contains(m, "PRO MAX"):
		tier = 0
	case strings.Contains(m, "PRO") && !strings.Contains(m, "MAX"):
		tier = 1
	case strings.Contains(m, "PLUS"):
		tier = 2
	case strings.Contains(m, "16E"):
		tier = 4
	}

	return -(gen*10 - tier)
}

// SortGroups returns a display-ordered copy of groups for the selected brand.
func SortGroups(brand string, groups []ModelGroup) []ModelGroup {
	out := make([]ModelGroup, len(groups))
	copy(out, groups)

	if strings.EqualFold(brand, IPhoneBrand) {
		sort.SliceStable(out, func(a, b int) bool {
			ka, kb := IPhoneSortKey(out[a].Model), IPhoneSortKey(out[b].Model)
			if ka != kb {
				return ka < kb
			}
			return out[a].Model < out[b].Model
		})
		return out
	}

	sort.SliceStable(out, func(a, b int) bool {
		pa, pb := out[a].MaxPrice, out[b].MaxPrice
		switch {
		case pa == nil && pb == nil:
			return out[a].Model < out[b].Model
		case pa == nil:
			return false
		case pb == nil:
			return true
		case *pa != *pb:
			return *pa > *pb
		}
		return out[a].Model < out[b].Model
	})
	return out
}

// FilterBrand keeps listings of one brand, compared case-insensitively. An empty brand keeps all.
func FilterBrand[T Listing](items []T, brand string) []T {
	if brand == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.ListingBrand(), brand) {
			out = append(out, item)
		}
	}
	return out
}

// Brands lists distinct brands, uppercased, in first-seen order.
func Brands[T Listing](items []T) []string {
	seen := make(map[string]struct{})
	brands := make([]string, 0)
	for _, item := range items {
		b := strings.ToUpper(item.ListingBrand())
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	return brands
}

var storagePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(GB|TB)?`)

// storageSize returns a comparable size in GB, or -1 when the label is not a capacity.
func storageSize(label string) float64 {
	m := storagePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(label)))
	if m == nil {
		return -1
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -1
	}
	if m[2] == "TB" {
		n *= 1024
	}
	return n
}

func sortStorages(storages []string) {
	sort.SliceStable(storages, func(a, b int) bool {
		sa, sb := storageSize(storages[a]), storageSize(storages[b])
		if sa != sb {
			if sa < 0 {
				return false
			}
			if sb < 0 {
				return true
			}
			return sa < sb
		}
		return storages[a] < storages[b]
	})
}
