package proto

type Empty struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateAccountResponse struct {
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse answers Login and RefreshToken.
type SessionResponse struct {
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// DeleteAccountRequest deletes Username, or the caller when it is empty.
type DeleteAccountRequest struct {
	Username string `json:"username,omitempty"`
}

type PromoteToAdminRequest struct {
	Username string `json:"username"`
}

type Account struct {
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []*Account `json:"accounts"`
}

// Audio carries an encoded clip; Data is base64 on the wire.
type Audio struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
	Lang   string `json:"lang,omitempty"`
}

type TranslateRequest struct {
	Text    string `json:"text"`
	Source  string `json:"source,omitempty"`
	Target  string `json:"target"`
	Speak   bool   `json:"speak,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
}

type TranslateResponse struct {
	Output    string   `json:"output"`
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Reverse   string   `json:"reverse,omitempty"`
	Time      string   `json:"time,omitempty"`
	Audio     *Audio   `json:"audio,omitempty"`
	AudioFile string   `json:"audio_file,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

type TranscribeRequest struct {
	Audio  *Audio `json:"audio"`
	Target string `json:"target,omitempty"`
	Speak  bool   `json:"speak,omitempty"`
}

type TranscribeResponse struct {
	Transcript  string             `json:"transcript"`
	Translation *TranslateResponse `json:"translation,omitempty"`
	Warnings    []string           `json:"warnings,omitempty"`
}

type SpeakRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type SpeakResponse struct {
	Audio     *Audio `json:"audio"`
	AudioFile string `json:"audio_file"`
}

// HistoryEntry mirrors the persisted record layout.
type HistoryEntry struct {
	Time   string `json:"time"`
	From   string `json:"from"`
	To     string `json:"to"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

type ListHistoryRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

type ListHistoryResponse struct {
	Entries []*HistoryEntry `json:"entries"`
}

type ClearHistoryRequest struct{}

type ListAllHistoryRequest struct{}

type ListAllHistoryResponse struct {
	Histories map[string][]*HistoryEntry `json:"histories"`
}

type ResetHistoryRequest struct {
	Username string `json:"username"`
}

type ExportHistoryRequest struct{}

type ExportHistoryResponse struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Entries int32  `json:"entries"`
}
