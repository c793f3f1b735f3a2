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

	ErrCoordinatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Koordinat lat/lon wajib diisi",
		http.StatusBadRequest,
	)

	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Tipe presensi tidak dikenal",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Format tanggal harus YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Sudah melakukan check-in untuk hari ini",
		http.StatusConflict,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Sudah melakukan check-out untuk hari ini",
		http.StatusConflict,
	)

	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"Belum melakukan check-in untuk hari ini",
		http.StatusConflict,
	)

	ErrOutOfFenceJustification = apperror.New(
		apperror.CodeInvalidInput,
		"Presensi di luar geofence wajib menyertakan tipe pengecualian dan catatan",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Sesi presensi tidak ditemukan",
		http.StatusNotFound,
	)

	ErrCorrectionNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Koreksi presensi wajib menyertakan catatan",
		http.StatusBadRequest,
	)
)
