package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/younsl/spotbid/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLatestImagePicksNewestCreationDate(t *testing.T) {
	image, err := LatestImage([]models.Image{
		{ImageID: "A", CreatedAt: day("2015-05-21")},
		{ImageID: "B", CreatedAt: day("2015-05-22")},
	})
	require.NoError(t, err)
	require.Equal(t, "B", image.ImageID)
}

func TestLatestImageNoImages(t *testing.T) {
	_, err := LatestImage(nil)
	var noRecords *NoRecordsError
	require.ErrorAs(t, err, &noRecords)
}

func TestKeyPairExactlyOneMatch(t *testing.T) {
	pairs := []models.KeyPair{
		{Name: "ops-worker", Fingerprint: "aa:bb"},
		{Name: "deploy-legacy", Fingerprint: "cc:dd"},
	}

	kp, err := KeyPair(pairs, "ops")
	require.NoError(t, err)
	require.Equal(t, "ops-worker", kp.Name)
}

func TestKeyPairMatchIsCaseInsensitive(t *testing.T) {
	pairs := []models.KeyPair{{Name: "ops-worker"}}

	kp, err := KeyPair(pairs, "OPS")
	require.NoError(t, err)
	require.Equal(t, "ops-worker", kp.Name)
}

func TestKeyPairZeroMatchesIsFatal(t *testing.T) {
	pairs := []models.KeyPair{{Name: "ops-worker"}}

	_, err := KeyPair(pairs, "missing")
	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	require.Empty(t, ambiguous.Candidates)
}

func TestKeyPairMultipleMatchesIsFatal(t *testing.T) {
	pairs := []models.KeyPair{
		{Name: "worker-a"},
		{Name: "worker-b"},
	}

	_, err := KeyPair(pairs, "worker")
	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, []string{"worker-a", "worker-b"}, ambiguous.Candidates)
	require.Contains(t, ambiguous.Error(), "worker-a")
}

func TestKeyPairNoRecords(t *testing.T) {
	_, err := KeyPair(nil, "worker")
	var noRecords *NoRecordsError
	require.ErrorAs(t, err, &noRecords)
}

func TestSecurityGroupMatchesNameOrDescription(t *testing.T) {
	groups := []models.SecurityGroup{
		{GroupID: "sg-1", Name: "default", Description: "default VPC security group"},
		{GroupID: "sg-2", Name: "nodes", Description: "worker fleet traffic"},
	}

	sg, err := SecurityGroup(groups, "worker")
	require.NoError(t, err)
	require.Equal(t, "sg-2", sg.GroupID)
}

func TestSecurityGroupAmbiguousAcrossFields(t *testing.T) {
	groups := []models.SecurityGroup{
		{GroupID: "sg-1", Name: "worker-nodes", Description: "fleet"},
		{GroupID: "sg-2", Name: "bastion", Description: "worker access"},
	}

	_, err := SecurityGroup(groups, "worker")
	var ambiguous *AmbiguousMatchError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Candidates, 2)
}

func TestCandidateTypesKeepsCatalogOrder(t *testing.T) {
	catalog := []string{"t3.micro", "m5.large", "m5.xlarge", "c5.large"}

	candidates, err := CandidateTypes(catalog, `^m5\.`)
	require.NoError(t, err)
	require.Equal(t, []string{"m5.large", "m5.xlarge"}, candidates)
}

func TestCandidateTypesEmptyMatchListsCatalog(t *testing.T) {
	catalog := []string{"t3.micro", "m5.large"}

	_, err := CandidateTypes(catalog, "zzz")
	var empty *EmptyCandidateSetError
	require.ErrorAs(t, err, &empty)
	require.Equal(t, catalog, empty.Catalog)
	require.Contains(t, empty.Error(), "m5.large")
}

func TestCandidateTypesBadPattern(t *testing.T) {
	_, err := CandidateTypes([]string{"m5.large"}, "[")
	require.Error(t, err)
}

func TestResolveUniqueIsGeneric(t *testing.T) {
	got, err := ResolveUnique([]int{1, 2, 3},
		func(v int) bool { return v == 2 },
		func(v int) string { return "n" },
		"number", "2")
	require.NoError(t, err)
	require.Equal(t, 2, got)
}
