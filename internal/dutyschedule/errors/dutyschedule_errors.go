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

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"User ID tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Actor ID tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format waktu harus RFC3339",
		http.StatusBadRequest,
	)

	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"Waktu mulai harus sebelum waktu selesai",
		http.StatusBadRequest,
	)

	ErrScheduleOverlap = apperror.New(
		apperror.CodeConflict,
		"Sudah ada jadwal dinas pada rentang waktu yang tumpang tindih",
		http.StatusConflict,
	)

	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Jadwal dinas tidak ditemukan",
		http.StatusNotFound,
	)

	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengajuan jadwal dinas tidak ditemukan",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Transisi status pengajuan jadwal dinas tidak valid",
		http.StatusBadRequest,
	)

	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Alasan penolakan wajib diisi saat status REJECTED",
		http.StatusBadRequest,
	)
)
