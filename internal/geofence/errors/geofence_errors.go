package errors

import (
	"net/http"

	"go-presensi/internal/shared/apperror"
)

var (
	ErrNoActiveGeofence = apperror.New(
		apperror.CodeInvalidState,
		"Satker belum memiliki geofence aktif, presensi tidak bisa diproses",
		http.StatusConflict,
	)

	ErrGeofenceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Geofence tidak ditemukan",
		http.StatusNotFound,
	)

	ErrInvalidSatkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Satker ID tidak valid",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"Radius geofence harus lebih besar dari nol",
		http.StatusBadRequest,
	)
)
