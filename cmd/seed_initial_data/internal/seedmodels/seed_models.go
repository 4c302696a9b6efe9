package seedmodels

// SeedQuiz is one quiz catalog entry in the JSON seed file.
type SeedQuiz struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// SeedFile is the top level of the JSON seed file.
type SeedFile struct {
	Quizzes []SeedQuiz `json:"quizzes"`
}
