package models

import "time"

type GrowthStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type RecentPost struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Status    ContentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    UserCompact   `json:"author"`
}

type DashboardStats struct {
	TotalUsers              int64         `json:"totalUsers"`
	TotalPosts              int64         `json:"totalPosts"`
	TotalConnections        int64         `json:"totalConnections"`
	TotalComments           int64         `json:"totalComments"`
	TotalLikes              int64         `json:"totalLikes"`
	TotalReports            int64         `json:"totalReports"`
	RecentUsers             []UserCompact `json:"recentUsers"`
	RecentPosts             []RecentPost  `json:"recentPosts"`
	UserGrowth              []GrowthStat  `json:"userGrowth"`
	AvgPopularityGrowthRate float64       `json:"avgPopularityGrowthRate"`
}
