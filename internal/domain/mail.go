package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeNewCampaign = "new_campaign"

type NewCampaignMailData struct {
	FullName  string     `json:"fullName"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Platforms []Platform `json:"platforms"`
	ImageURL  string     `json:"imageUrl"`
}
