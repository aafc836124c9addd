package database

import (
	"encoding/json"
	"os"

	"github.com/printdesk/printdesk/models"
)

// EnquirySnapshotPath is where the latest enquiry list is mirrored so the
// nav badge can show a count before the remote answers. Best effort only,
// never authoritative.
const EnquirySnapshotPath = ".printdesk_enquiries.json"

func SaveEnquirySnapshot(path string, enquiries []models.Enquiry) error {
	if path == "" {
		path = EnquirySnapshotPath
	}
	data, err := json.Marshal(enquiries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// NewEnquiryCount reads the snapshot and counts enquiries still in New.
// Any read or parse failure counts as zero.
func NewEnquiryCount(path string) int {
	if path == "" {
		path = EnquirySnapshotPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var enquiries []models.Enquiry
	if err := json.Unmarshal(data, &enquiries); err != nil {
		return 0
	}
	count := 0
	for _, e := range enquiries {
		if e.Status == models.EnquiryStatusNew {
			count++
		}
	}
	return count
}
