package model

// Credential is the login record for an account, kept apart from the learner.
type Credential struct {
	LearnerID    string `json:"learnerId"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}
