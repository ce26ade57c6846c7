package model

// QuestionOption is a single labeled answer choice.
type QuestionOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// GeneratedQuestion is one AI-generated multiple-choice question.
// Field names are the wire contract with the quiz client, hence camelCase.
type GeneratedQuestion struct {
	ID            string           `json:"id"`
	Question      string           `json:"question"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correctAnswer"`
	Explanation   string           `json:"explanation"`
	Subject       string           `json:"subject"`
	Topic         string           `json:"topic"`
}

// GenerateQuestionsRequest is the payload for the quiz generation endpoint.
type GenerateQuestionsRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=100"`
	Topic   string `json:"topic" binding:"required,min=1,max=150"`
}
