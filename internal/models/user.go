package models

import (
	"strings"
	"time"
)

type User struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Role             string    `json:"role" db:"role"`
	CardNumber       *string   `json:"cardNumber" db:"card_number"`
	PhotoPath        string    `json:"photoPath" db:"photo_path"`
	RegistrationDate time.Time `json:"registrationDate" db:"registration_date"`
}

// PhotoPartition is one row of the role-partitioned photo registry kept
// alongside the user record at registration time.
type PhotoPartition struct {
	Partition string `json:"partition" db:"partition"`
	UserID    int64  `json:"userId" db:"user_id"`
	PhotoPath string `json:"photoPath" db:"photo_path"`
}

// PartitionForRole returns the photo registry partition for a role, or ""
// when the role has no partition. Only employees and students are
// partitioned; other roles keep their photo on the user record alone.
func PartitionForRole(role string) string {
	switch strings.ToLower(role) {
	case "employee":
		return "employeePhotos2023"
	case "student":
		return "studentPhotos2023"
	}
	return ""
}
