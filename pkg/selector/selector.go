// Package selector turns raw provider records into the single
// image/key/group and the candidate type set a launch needs. All
// functions are pure; a filter that does not resolve to the expected
// shape fails loudly instead of silently taking the first match.
package selector

import (
	"fmt"
	"regexp"

	"github.com/samber/lo"

	"github.com/younsl/spotbid/internal/models"
)

// ResolveUnique returns the single record matching pred. Zero or
// multiple matches yield an AmbiguousMatchError naming every
// candidate via the name function.
func ResolveUnique[T any](records []T, pred func(T) bool, name func(T) string, what, pattern string) (T, error) {
	matched := lo.Filter(records, func(r T, _ int) bool { return pred(r) })
	if len(matched) != 1 {
		var zero T
		return zero, &AmbiguousMatchError{
			What:       what,
			Pattern:    pattern,
			Candidates: lo.Map(matched, func(r T, _ int) string { return name(r) }),
		}
	}
	return matched[0], nil
}

// LatestImage picks the most recently created image. Image selection
// needs no filter beyond ownership, so recency is the whole rule.
func LatestImage(images []models.Image) (models.Image, error) {
	if len(images) == 0 {
		return models.Image{}, &NoRecordsError{What: "image"}
	}

	latest := images[0]
	for _, img := range images[1:] {
		if img.CreatedAt.After(latest.CreatedAt) {
			latest = img
		}
	}
	return latest, nil
}

// KeyPair resolves exactly one key pair whose name matches pattern
// case-insensitively
func KeyPair(pairs []models.KeyPair, pattern string) (models.KeyPair, error) {
	if len(pairs) == 0 {
		return models.KeyPair{}, &NoRecordsError{What: "key pair"}
	}

	re, err := compile(pattern)
	if err != nil {
		return models.KeyPair{}, err
	}
	return ResolveUnique(pairs,
		func(kp models.KeyPair) bool { return re.MatchString(kp.Name) },
		func(kp models.KeyPair) string { return kp.Name },
		"key pair", pattern)
}

// SecurityGroup resolves exactly one group whose name or description
// matches pattern case-insensitively
func SecurityGroup(groups []models.SecurityGroup, pattern string) (models.SecurityGroup, error) {
	if len(groups) == 0 {
		return models.SecurityGroup{}, &NoRecordsError{What: "security group"}
	}

	re, err := compile(pattern)
	if err != nil {
		return models.SecurityGroup{}, err
	}
	return ResolveUnique(groups,
		func(sg models.SecurityGroup) bool { return re.MatchString(sg.Name) || re.MatchString(sg.Description) },
		func(sg models.SecurityGroup) string { return fmt.Sprintf("%s (%s)", sg.Name, sg.GroupID) },
		"security group", pattern)
}

// CandidateTypes narrows the static catalog to the types matching
// pattern, preserving catalog order. An empty result is fatal and
// lists the full catalog.
func CandidateTypes(catalog []string, pattern string) ([]string, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, err
	}

	candidates := lo.Filter(catalog, func(t string, _ int) bool { return re.MatchString(t) })
	if len(candidates) == 0 {
		return nil, &EmptyCandidateSetError{Pattern: pattern, Catalog: catalog}
	}
	return candidates, nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}
