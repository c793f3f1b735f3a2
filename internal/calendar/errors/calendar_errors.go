package errors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format tanggal harus YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Tanggal mulai harus sebelum atau sama dengan tanggal akhir",
		http.StatusBadRequest,
	)

	ErrRangeTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Rentang generate kalender maksimal 370 hari",
		http.StatusBadRequest,
	)

	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format jam harus HH:MM",
		http.StatusBadRequest,
	)

	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"Scope holiday harus NATIONAL atau SATKER",
		http.StatusBadRequest,
	)

	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"Kind holiday harus HOLIDAY atau HALF_DAY",
		http.StatusBadRequest,
	)

	ErrSatkerIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Holiday scope SATKER wajib menyertakan satker_id",
		http.StatusBadRequest,
	)
)
