package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyReviewsKey_Deterministic(t *testing.T) {
	a := CompanyReviewsKey("c1", 0, 20, true)
	b := CompanyReviewsKey("c1", 0, 20, true)
	assert.Equal(t, a, b)
	assert.Equal(t, "company:reviews:c1:0:20:true", a)
}

func TestCompanyReviewsKey_VariantsDiffer(t *testing.T) {
	keys := map[string]bool{
		CompanyReviewsKey("c1", 0, 20, true):  true,
		CompanyReviewsKey("c1", 0, 20, false): true,
		CompanyReviewsKey("c1", 20, 20, true): true,
		CompanyReviewsKey("c1", 0, 10, true):  true,
	}
	assert.Len(t, keys, 4)
}

func TestCompanyReviewsKeyPrefix_CoversAllVariants(t *testing.T) {
	prefix := CompanyReviewsKeyPrefix("c1")
	assert.True(t, strings.HasPrefix(CompanyReviewsKey("c1", 0, 20, true), prefix))
	assert.True(t, strings.HasPrefix(CompanyReviewsKey("c1", 40, 10, false), prefix))
	assert.False(t, strings.HasPrefix(CompanyReviewsKey("c2", 0, 20, true), prefix))
}

func TestStatisticsKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t,
		StatisticsKey("Software Engineer", "Senior", "Berlin"),
		StatisticsKey("software engineer", "senior", "berlin"))
}

func TestStatisticsKey_EmptyDimensionsKeepSlots(t *testing.T) {
	assert.Equal(t, "salary:statistics:engineer::", StatisticsKey("engineer", "", ""))
	assert.Equal(t, "salary:statistics::senior:", StatisticsKey("", "senior", ""))
	assert.NotEqual(t, StatisticsKey("engineer", "", ""), StatisticsKey("", "engineer", ""))
}

func TestCompanySalariesKeyPrefix(t *testing.T) {
	prefix := CompanySalariesKeyPrefix("c9")
	assert.True(t, strings.HasPrefix(CompanySalariesKey("c9", 0, 50), prefix))
	assert.False(t, strings.HasPrefix(CompanySalariesKey("c10", 0, 50), prefix))
}
