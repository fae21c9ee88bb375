package cache

import (
	"fmt"
	"strings"
)

// Key builders. Every cached surface derives its key here so the write
// path can invalidate by the same names the read path populates.

const (
	CompanyDetailPrefix  = "company:detail:"
	CompanyReviewsPrefix = "company:reviews:"
	CompanySalaryPrefix  = "company:salaries:"
	StatisticsPrefix     = "salary:statistics:"
	DashboardKey         = "admin:dashboard"
	AdminSalariesPrefix  = "admin:salaries:"
	SearchPrefix         = "search:"
)

func CompanyDetailKey(companyID string) string {
	return CompanyDetailPrefix + companyID
}

func CompanyReviewsKey(companyID string, skip, limit int, includeFiles bool) string {
	return fmt.Sprintf("%s%s:%d:%d:%t", CompanyReviewsPrefix, companyID, skip, limit, includeFiles)
}

// CompanyReviewsKeyPrefix covers all pagination variants for one company.
func CompanyReviewsKeyPrefix(companyID string) string {
	return CompanyReviewsPrefix + companyID + ":"
}

func CompanySalariesKey(companyID string, skip, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", CompanySalaryPrefix, companyID, skip, limit)
}

func CompanySalariesKeyPrefix(companyID string) string {
	return CompanySalaryPrefix + companyID + ":"
}

// StatisticsKey normalizes free-text dimensions so "Engineer" and
// "engineer" share an entry. Empty dimensions keep their slot to stay
// unambiguous.
func StatisticsKey(jobTitle, level, location string) string {
	return StatisticsPrefix + strings.ToLower(jobTitle) + ":" + strings.ToLower(level) + ":" + strings.ToLower(location)
}

func AdminSalariesKey(skip, limit int, filters string) string {
	return fmt.Sprintf("%s%d:%d:%s", AdminSalariesPrefix, skip, limit, filters)
}

func SearchKey(query string, skip, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", SearchPrefix, strings.ToLower(query), skip, limit)
}
