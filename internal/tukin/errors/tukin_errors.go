package errors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrInvalidSatkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Satker ID tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format bulan harus YYYY-MM",
		http.StatusBadRequest,
	)

	ErrInvalidScope = apperror.New(
		apperror.CodeInvalidInput,
		"Scope kebijakan harus GLOBAL atau SATKER",
		http.StatusBadRequest,
	)

	ErrSatkerIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Kebijakan scope SATKER wajib menyertakan satker_id",
		http.StatusBadRequest,
	)

	ErrInvalidCredit = apperror.New(
		apperror.CodeInvalidInput,
		"Kredit aturan cuti harus di antara 0 dan 1",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format tanggal harus YYYY-MM-DD",
		http.StatusBadRequest,
	)

	// Tidak ada kebijakan aktif adalah kegagalan keras, bukan kalkulasi
	// diam-diam dengan parameter nol.
	ErrNoActivePolicy = apperror.New(
		apperror.CodeNotFound,
		"Tidak ada kebijakan tukin aktif untuk periode ini",
		http.StatusNotFound,
	)

	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Kebijakan tukin tidak ditemukan",
		http.StatusNotFound,
	)

	ErrCalculationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Snapshot kalkulasi tukin tidak ditemukan",
		http.StatusNotFound,
	)

	ErrNoUsersResolved = apperror.New(
		apperror.CodeInvalidInput,
		"Tidak ada user yang bisa dihitung untuk parameter ini",
		http.StatusBadRequest,
	)
)
