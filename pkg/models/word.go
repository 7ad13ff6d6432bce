package models

// Word represents a vocabulary entry assigned to a textbook unit and a study list
type Word struct {
	ID          int64  `json:"id" db:"id"`
	Text        string `json:"text" db:"word"`
	Translation string `json:"translation" db:"translation"`
	Phonetic    string `json:"phonetic" db:"phonetic"`
	Grade       string `json:"grade" db:"grade"`
	Textbook    string `json:"textbook" db:"textbook"`
	Unit        int    `json:"unit" db:"unit"`
	ListID      int    `json:"list_id" db:"list_id"`   // List the word is memorized in
	Position    int    `json:"position" db:"position"` // Natural order inside the list
}
