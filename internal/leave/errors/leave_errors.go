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

	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Tipe cuti tidak dikenal",
		http.StatusBadRequest,
	)

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

	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"Sudah ada pengajuan cuti pada periode yang tumpang tindih",
		http.StatusConflict,
	)

	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pengajuan cuti tidak ditemukan",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Transisi status pengajuan cuti tidak valid",
		http.StatusBadRequest,
	)

	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Alasan penolakan wajib diisi saat status REJECTED",
		http.StatusBadRequest,
	)
)
