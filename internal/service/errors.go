package service

import "errors"

// 遊戲邏輯的預期錯誤，handler 層以 errors.Is 比對並轉成對應的 HTTP 狀態
// 資料庫連線等非預期錯誤直接往上傳，不在此列
var (
	ErrGameNotFound     = errors.New("遊戲不存在")
	ErrRoundNotFound    = errors.New("回合不存在")
	ErrResponseNotFound = errors.New("答案不存在")
	ErrNotMember        = errors.New("用戶不在這場遊戲中")
	ErrForbidden        = errors.New("只有房主可以執行此操作")

	ErrAlreadyMember = errors.New("用戶已經加入這場遊戲")
	ErrGameFull      = errors.New("遊戲人數已滿")

	ErrInvalidAnswer       = errors.New("答案不能為空白或超過長度限制")
	ErrDuplicateAnswer     = errors.New("這個答案已經有人提交過")
	ErrDuplicateSubmission = errors.New("這回合已經提交過答案")

	ErrSelfVote     = errors.New("不能投給自己的答案")
	ErrAlreadyVoted = errors.New("這回合已經投過票")

	ErrNoPlayers           = errors.New("遊戲中沒有任何玩家")
	ErrInsufficientCatalog = errors.New("食材目錄數量不足")
)
