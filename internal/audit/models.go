package audit

import "time"

// Actions emitted when the ledger records a certificate.
const (
	ActionSchoolCertificateIssued  = "school_certificate_issued"
	ActionStudentCertificateIssued = "student_certificate_issued"
)

// Event is emitted from the ledger to capture issuance activity. It carries
// only anonymized usage data: the opaque certificate id and, for school
// certificates, the region. School and personal names never appear here.
type Event struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Action        string    `json:"action"`
	CertificateID string    `json:"certificate_id"`
	Region        string    `json:"region,omitempty"`
}
