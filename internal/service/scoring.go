package service

import (
	"sort"

	"cookoff_web/internal/models"
)

// Standing 表示排行榜上的一列
type Standing struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
}

// Standings 將成員記錄轉成排行榜，分數由高到低
// 同分時維持加入順序，排序結果是穩定的
func Standings(memberships []models.Membership) []Standing {
	standings := make([]Standing, 0, len(memberships))
	for _, m := range memberships {
		standings = append(standings, Standing{
			UserID:      m.UserID,
			DisplayName: m.User.DisplayName,
			Score:       m.Score,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}

// TopStanding 回傳排行榜首位，沒有玩家時回傳 ErrNoPlayers
func TopStanding(memberships []models.Membership) (Standing, []Standing, error) {
	standings := Standings(memberships)
	if len(standings) == 0 {
		return Standing{}, nil, ErrNoPlayers
	}
	return standings[0], standings, nil
}
