package matching

import (
	"math"
	"strings"

	"github.com/connectsphere/backend/models"
)

// Candidate 参与匹配的用户及其档案属性
type Candidate struct {
	UserID   uint
	Username string
	Email    string
	JobTitle string
	Company  string
	Industry string
	Goals    []string
}

// 两个档案没有任何可比属性时的保底分数
const noDataScore = 40

// 行业相关度聚类：同一聚类但不同行业给部分加分
var industryClusters = map[string]string{
	"technology":     "tech",
	"software":       "tech",
	"it":             "tech",
	"engineering":    "tech",
	"finance":        "finance",
	"banking":        "finance",
	"insurance":      "finance",
	"accounting":     "finance",
	"healthcare":     "health",
	"health":         "health",
	"medical":        "health",
	"pharma":         "health",
	"biotech":        "health",
	"marketing":      "media",
	"advertising":    "media",
	"media":          "media",
	"communications": "media",
	"education":      "education",
	"training":       "education",
	"research":       "education",
	"academia":       "education",
}

// 职位关键词词表
var roleKeywords = []string{
	"engineer", "developer", "manager", "director", "analyst", "designer",
	"consultant", "founder", "sales", "marketing", "product", "data",
}

// 相关职位分组：无关键词重叠时的兜底
var roleGroups = map[string]string{
	"engineer":  "builder",
	"developer": "builder",
	"manager":   "leader",
	"director":  "leader",
	"analyst":   "insight",
	"data":      "insight",
}

var seniorityMarkers = []string{"senior", "lead", "principal", "head"}

// Score 计算两个档案的兼容性分数(0-100)。
// 对称且无副作用：Score(a,b) == Score(b,a)。缺失的属性直接跳过，不会报错。
func Score(a, b *Candidate, weights models.WeightConfig) int {
	score := 0.0
	factors := 0

	if a.Industry != "" && b.Industry != "" {
		factors++
		score += industryScore(a.Industry, b.Industry, weights.Industry)
	}

	if a.Company != "" && b.Company != "" {
		factors++
		score += companyScore(a.Company, b.Company, weights.Company)
	}

	if a.JobTitle != "" && b.JobTitle != "" {
		factors++
		score += jobTitleScore(a.JobTitle, b.JobTitle, weights.JobTitle)
	}

	if len(a.Goals) > 0 && len(b.Goals) > 0 {
		factors++
		score += goalsScore(a.Goals, b.Goals, weights.NetworkingGoals)
	}

	if factors == 0 {
		return noDataScore
	}

	// 按四个因子归一化：因子不足时放大已有因子的贡献
	final := score * 4 / float64(factors)
	if final > 100 {
		final = 100
	}
	if final < 0 {
		final = 0
	}
	return int(math.Round(final))
}

// industryScore 行业相似度
func industryScore(i1, i2 string, weight float64) float64 {
	i1 = strings.ToLower(strings.TrimSpace(i1))
	i2 = strings.ToLower(strings.TrimSpace(i2))

	if i1 == i2 {
		return weight
	}

	c1, ok1 := industryClusters[i1]
	c2, ok2 := industryClusters[i2]
	if ok1 && ok2 && c1 == c2 {
		return 15
	}
	return 5
}

// companyScore 雇主相似度
func companyScore(c1, c2 string, weight float64) float64 {
	n1 := strings.ToLower(strings.TrimSpace(c1))
	n2 := strings.ToLower(strings.TrimSpace(c2))

	if n1 == n2 {
		return weight
	}

	// 公司类型启发式：名称里的公司形态关键词
	t1 := companyType(n1)
	t2 := companyType(n2)
	if t1 != "" && t1 == t2 {
		return 12
	}
	return 5
}

func companyType(name string) string {
	for _, marker := range []string{"startup", "inc", "llc"} {
		if strings.Contains(name, marker) {
			return "startup"
		}
	}
	for _, marker := range []string{"corp", "ltd", "group"} {
		if strings.Contains(name, marker) {
			return "corporate"
		}
	}
	return ""
}

// jobTitleScore 职位相似度：资历占权重30%，职能关键词占70%
func jobTitleScore(t1, t2 string, weight float64) float64 {
	l1 := strings.ToLower(t1)
	l2 := strings.ToLower(t2)

	score := 0.0

	if isSenior(l1) == isSenior(l2) {
		score += weight * 0.3
	}

	k1 := extractRoleKeywords(l1)
	k2 := extractRoleKeywords(l2)

	overlap := false
	for kw := range k1 {
		if k2[kw] {
			overlap = true
			break
		}
	}

	if overlap {
		score += weight * 0.7
	} else if sharesRoleGroup(k1, k2) {
		score += weight * 0.4
	}

	return score
}

func isSenior(title string) bool {
	for _, marker := range seniorityMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

func extractRoleKeywords(title string) map[string]bool {
	found := make(map[string]bool)
	for _, kw := range roleKeywords {
		if strings.Contains(title, kw) {
			found[kw] = true
		}
	}
	return found
}

func sharesRoleGroup(k1, k2 map[string]bool) bool {
	g1 := make(map[string]bool)
	for kw := range k1 {
		if group, ok := roleGroups[kw]; ok {
			g1[group] = true
		}
	}
	for kw := range k2 {
		if group, ok := roleGroups[kw]; ok && g1[group] {
			return true
		}
	}
	return false
}

// goalsScore 人脉目标重合度（Jaccard）
func goalsScore(g1, g2 []string, weight float64) float64 {
	set1 := make(map[string]bool, len(g1))
	for _, g := range g1 {
		set1[strings.ToLower(strings.TrimSpace(g))] = true
	}
	set2 := make(map[string]bool, len(g2))
	for _, g := range g2 {
		set2[strings.ToLower(strings.TrimSpace(g))] = true
	}

	overlap := 0
	for g := range set2 {
		if set1[g] {
			overlap++
		}
	}

	union := len(set1) + len(set2) - overlap
	if union == 0 {
		return 0
	}

	return float64(overlap) / float64(union) * weight
}
