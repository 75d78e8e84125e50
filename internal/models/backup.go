package models

// BackupState is the whole-application snapshot stored under the reserved
// backup key. Save overwrites any previous snapshot; restore replaces the
// live state wholesale, there is no merge.
type BackupState struct {
	Forms       []Form `json:"forms"`
	CurrentForm *Form  `json:"currentForm"`
	View        string `json:"view"`
}
