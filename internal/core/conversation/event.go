package conversation

// Sender はイベントに付随するチャネル上の送信者情報です。
type Sender struct {
	ChannelUserID string
	DisplayName   string
}

// Event はチャネルから届く三種類の入力の抽象です。
type Event interface {
	isEvent()
}

// Command は /start のようなトップレベルコマンドです。
type Command struct {
	Name string
}

// ButtonPress はボタン押下で届く選択トークンです。
type ButtonPress struct {
	Token string
}

// TextMessage は自由入力のテキストです。
type TextMessage struct {
	Body string
}

func (Command) isEvent()     {}
func (ButtonPress) isEvent() {}
func (TextMessage) isEvent() {}

// Choice は表示ラベルと押下時に返るトークンの組です。
type Choice struct {
	Label string
	Token string
}

// Render はエンジンが一回の入力に対して必ず一つだけ返す描画指示です。
// Choices が nil なら平文メッセージ、EditInPlace が真なら直前の描画を
// 上書きします(ボタン押下への応答で使います)。
type Render struct {
	Body        string
	Choices     [][]Choice
	EditInPlace bool
}
