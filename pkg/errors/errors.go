// Package errors 提供應用程式錯誤處理
package errors

import (
	"errors"
	"fmt"
)

// 定義錯誤碼
//
// 錯誤分類（對應遊戲伺服器的錯誤處理策略）：
//   - 指令拒絕（command rejection）：非法的狀態轉換，只回報給發起者，不記錄為錯誤
//   - 資源生命週期（lifecycle）：重複停止、停止不存在的房間，視為 no-op
//   - 持久化（persistence）：結果寫入失敗，記錄後吞掉，不影響模擬
const (
	// ErrCodeNotFound 資源未找到
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists 資源已存在
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeRoomFull 房間已滿
	ErrCodeRoomFull = "ROOM_FULL"
	// ErrCodeNotLeader 非房主操作
	ErrCodeNotLeader = "NOT_LEADER"
	// ErrCodeNotMember 玩家不在房間內
	ErrCodeNotMember = "NOT_MEMBER"
	// ErrCodeInvalidState 非法的遊戲狀態轉換
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeOnCooldown 冷卻時間未結束
	ErrCodeOnCooldown = "ON_COOLDOWN"
	// ErrCodeInvalidInput 無效輸入
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInternal 內部錯誤
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeUnavailable 服務不可用
	ErrCodeUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError 應用程式錯誤
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error 實現 error 介面
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 實現 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 實現 errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 創建新的應用程式錯誤
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包裝錯誤
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails 添加詳細資訊
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// 預定義錯誤
var (
	// ErrRoomNotFound 房間不存在
	ErrRoomNotFound = New(ErrCodeNotFound, "房間不存在")

	// ErrRoomExists 房間已存在
	ErrRoomExists = New(ErrCodeAlreadyExists, "房間已存在")

	// ErrRoomFull 房間已滿
	ErrRoomFull = New(ErrCodeRoomFull, "房間已滿")

	// ErrAlreadyMember 玩家已在房間內
	ErrAlreadyMember = New(ErrCodeAlreadyExists, "玩家已在房間內")

	// ErrNotMember 玩家不在房間內
	ErrNotMember = New(ErrCodeNotMember, "玩家不在房間內")

	// ErrNotLeader 只有房主可以執行此操作
	ErrNotLeader = New(ErrCodeNotLeader, "只有房主可以執行此操作")

	// ErrGameStarted 遊戲已開始
	ErrGameStarted = New(ErrCodeInvalidState, "遊戲已開始")

	// ErrGameNotStarted 遊戲尚未開始
	ErrGameNotStarted = New(ErrCodeInvalidState, "遊戲尚未開始")

	// ErrGameOver 遊戲已結束
	ErrGameOver = New(ErrCodeInvalidState, "遊戲已結束")

	// ErrShotOnCooldown 射擊冷卻中
	ErrShotOnCooldown = New(ErrCodeOnCooldown, "射擊冷卻中")

	// ErrPlayerDead 玩家已死亡
	ErrPlayerDead = New(ErrCodeInvalidState, "玩家已死亡")
)

// IsNotFound 檢查是否為未找到錯誤
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsAlreadyExists 檢查是否為已存在錯誤
func IsAlreadyExists(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeAlreadyExists
	}
	return false
}

// IsRejection 檢查是否為指令拒絕（回報給發起者即可，不記錄為錯誤）
func IsRejection(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case ErrCodeNotFound, ErrCodeAlreadyExists, ErrCodeRoomFull,
			ErrCodeNotLeader, ErrCodeNotMember, ErrCodeInvalidState,
			ErrCodeOnCooldown, ErrCodeInvalidInput:
			return true
		}
	}
	return false
}

// IsOnCooldown 檢查是否為冷卻拒絕
func IsOnCooldown(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeOnCooldown
	}
	return false
}

// Code 取出錯誤碼（非 AppError 一律視為內部錯誤）
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
