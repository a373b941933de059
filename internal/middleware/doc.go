// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 這個包包含了各種中間件函數，用於在 HTTP 請求處理過程中執行額外的操作。
// 目前主要用於 JWT 身份驗證，將登入用戶的 ID 放入請求上下文。
package middleware
