package dto

type SaveChatRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SaveChatResponse struct {
	ChatID int64 `json:"chatId"`
}
