package errors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrUserRateLimited = apperror.New(
		apperror.CodeRateLimited,
		"Terlalu banyak permintaan challenge untuk user ini, coba lagi sebentar lagi",
		http.StatusTooManyRequests,
	)

	ErrDeviceRateLimited = apperror.New(
		apperror.CodeRateLimited,
		"Terlalu banyak permintaan challenge dari perangkat ini, coba lagi sebentar lagi",
		http.StatusTooManyRequests,
	)

	ErrChallengeNotFound = apperror.New(
		apperror.CodeInvalidState,
		"Challenge tidak ditemukan, sudah dipakai, atau kedaluwarsa",
		http.StatusConflict,
	)

	ErrChallengeMismatch = apperror.New(
		apperror.CodeInvalidState,
		"Challenge tidak cocok dengan user, satker, atau perangkat peminta",
		http.StatusConflict,
	)

	ErrChallengeExpired = apperror.New(
		apperror.CodeInvalidState,
		"Challenge sudah kedaluwarsa",
		http.StatusConflict,
	)

	ErrDeviceIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Device ID wajib diisi",
		http.StatusBadRequest,
	)
)
