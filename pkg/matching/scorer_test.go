package matching

import (
	"testing"

	"github.com/connectsphere/backend/models"

	"github.com/stretchr/testify/assert"
)

func defaultWeights() models.WeightConfig {
	return models.DefaultWeights()
}

func TestScoreSymmetryAndPurity(t *testing.T) {
	a := &Candidate{
		UserID:   1,
		Industry: "Technology",
		Company:  "Acme Inc",
		JobTitle: "Senior Engineer",
		Goals:    []string{"mentorship"},
	}
	b := &Candidate{
		UserID:   2,
		Industry: "Finance",
		Company:  "Globex Corp",
		JobTitle: "Analyst",
		Goals:    []string{"mentorship", "hiring"},
	}

	ab := Score(a, b, defaultWeights())
	ba := Score(b, a, defaultWeights())
	assert.Equal(t, ab, ba)

	// 重复调用结果一致
	for i := 0; i < 10; i++ {
		assert.Equal(t, ab, Score(a, b, defaultWeights()))
	}
}

func TestScoreBounds(t *testing.T) {
	candidates := []*Candidate{
		{UserID: 1},
		{UserID: 2, Industry: "Technology"},
		{UserID: 3, Industry: "Technology", Company: "Acme Inc"},
		{UserID: 4, Industry: "Banking", JobTitle: "Senior Analyst", Goals: []string{"mentorship", "travel"}},
		{UserID: 5, Industry: "Media", Company: "Initech Group", JobTitle: "Lead Designer", Goals: []string{"hiring"}},
	}

	for _, a := range candidates {
		for _, b := range candidates {
			if a.UserID == b.UserID {
				continue
			}
			score := Score(a, b, defaultWeights())
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestScoreNoComparableAttributes(t *testing.T) {
	// 没有任何可比属性时返回保底分40
	a := &Candidate{UserID: 1, Industry: "Technology"}
	b := &Candidate{UserID: 2, Company: "Acme Inc"}

	assert.Equal(t, 40, Score(a, b, defaultWeights()))

	empty1 := &Candidate{UserID: 3}
	empty2 := &Candidate{UserID: 4}
	assert.Equal(t, 40, Score(empty1, empty2, defaultWeights()))
}

func TestScoreFullProfileScenario(t *testing.T) {
	// 行业35 + 同雇主20 + 职位15（资历一致+关键词重叠） + 目标15（1/2*30） = 85
	a := &Candidate{
		UserID:   1,
		Industry: "Technology",
		Company:  "Acme Inc",
		JobTitle: "Senior Engineer",
		Goals:    []string{"mentorship"},
	}
	b := &Candidate{
		UserID:   2,
		Industry: "Technology",
		Company:  "Acme Inc",
		JobTitle: "Lead Engineer",
		Goals:    []string{"mentorship", "travel"},
	}

	assert.Equal(t, 85, Score(a, b, defaultWeights()))
}

func TestScoreRelatedIndustry(t *testing.T) {
	// 同聚类不同行业：部分加分15，单因子放大为15*4=60
	a := &Candidate{UserID: 1, Industry: "Technology"}
	b := &Candidate{UserID: 2, Industry: "Software"}

	assert.Equal(t, 60, Score(a, b, defaultWeights()))
}

func TestScoreCompanyTypeHeuristic(t *testing.T) {
	// 都是startup类公司名：12分，单因子放大为48
	a := &Candidate{UserID: 1, Company: "Acme Inc"}
	b := &Candidate{UserID: 2, Company: "Beta LLC"}

	assert.Equal(t, 48, Score(a, b, defaultWeights()))

	// 不同公司类型：保底5分，放大为20
	c := &Candidate{UserID: 3, Company: "Initech Group"}
	assert.Equal(t, 20, Score(a, c, defaultWeights()))
}

func TestScoreGoalsJaccard(t *testing.T) {
	// 交集1并集3：1/3*30=10，单因子放大为40
	a := &Candidate{UserID: 1, Goals: []string{"mentorship", "hiring"}}
	b := &Candidate{UserID: 2, Goals: []string{"hiring", "travel"}}

	assert.Equal(t, 40, Score(a, b, defaultWeights()))
}

func TestScoreSingleExactFactorHitsCap(t *testing.T) {
	// 单个满分因子被4/factors放大后触顶
	a := &Candidate{UserID: 1, Industry: "Technology"}
	b := &Candidate{UserID: 2, Industry: "Technology"}

	assert.Equal(t, 100, Score(a, b, defaultWeights()))
}

func TestScoreCustomWeights(t *testing.T) {
	weights := models.WeightConfig{Industry: 20, Company: 20, NetworkingGoals: 50, JobTitle: 10}

	a := &Candidate{UserID: 1, Industry: "Technology"}
	b := &Candidate{UserID: 2, Industry: "Technology"}

	// 行业权重20，单因子放大为80
	assert.Equal(t, 80, Score(a, b, weights))
}
