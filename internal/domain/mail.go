package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RequestStaffedMailData struct {
	ContactPerson string `json:"contactPerson"`
	Client        string `json:"client"`
	JobSite       string `json:"jobSite"`
}

type AssignmentNoticeMailData struct {
	StaffName     string `json:"staffName"`
	JobSite       string `json:"jobSite"`
	Client        string `json:"client"`
	ShiftCount    int    `json:"shiftCount"`
	EffectiveDate string `json:"effectiveDate,omitempty"` // 为空表示立即生效
}
