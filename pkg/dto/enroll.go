package dto

// EnrollRequest is shared by the persisting CGI endpoint and the dry-run
// JSON endpoint. UserID crosses the wire as a JSON number or a numeric
// string depending on device firmware, so it binds loosely and the
// handler coerces it.
type EnrollRequest struct {
	UserID        interface{} `json:"userId" binding:"required"`
	UserName      string      `json:"userName" binding:"required"`
	FaceTemplates []string    `json:"faceTemplates"`
	Photos        []string    `json:"photos"`
}

type EnrollStoredResponse struct {
	Message        string `json:"message"`
	UserID         int64  `json:"userId"`
	UserName       string `json:"userName"`
	TemplatesCount int    `json:"templatesCount"`
	PhotosCount    int    `json:"photosCount"`
	EnrollmentDate string `json:"enrollmentDate"`
}

type EnrollDryRunResponse struct {
	Message        string `json:"message"`
	Note           string `json:"note"`
	UserID         int64  `json:"userId"`
	UserName       string `json:"userName"`
	TemplatesCount int    `json:"templatesCount"`
	PhotosCount    int    `json:"photosCount"`
}

// TemplateRecord is one stored enrollment row.
type TemplateRecord struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	UserName       string `json:"userName"`
	FaceTemplate   string `json:"faceTemplate"`
	PhotoKey       string `json:"photoKey,omitempty"`
	EnrollmentDate string `json:"enrollmentDate"`
}

type TemplateListResponse struct {
	UserID    int64            `json:"userId"`
	Templates []TemplateRecord `json:"templates"`
	Count     int              `json:"count"`
}
