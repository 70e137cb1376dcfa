package dto

// ImportBackupResponse resultado de restaurar un respaldo.
type ImportBackupResponse struct {
	Materials  int      `json:"materials"`
	Recipes    int      `json:"recipes"`
	Records    int      `json:"records"`
	Categories int      `json:"categories"`
	Warnings   []string `json:"warnings,omitempty"`
}
