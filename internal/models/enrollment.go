package models

import (
	"time"
)

// EnrollmentRecord is one stored face template. A single enrollment call
// produces one record per template, all sharing the same EnrolledAt.
// PhotoKey is the object-store key of the photo paired with this template,
// or "" when the template arrived without one.
type EnrollmentRecord struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	UserName     string    `json:"userName" db:"user_name"`
	FaceTemplate string    `json:"faceTemplate" db:"face_template"`
	PhotoKey     string    `json:"photoKey" db:"photo_key"`
	EnrolledAt   time.Time `json:"enrollmentDate" db:"enrolled_at"`
}

// Enrollment caps enforced before anything is stored.
const (
	MaxFaceTemplates    = 20
	MaxEnrollmentPhotos = 5
)
