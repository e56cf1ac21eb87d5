// Package chat provides the conversation view for the TUI. It collects the
// equipment description at session start, runs the question loop with
// clarification round-trips, and records answer verdicts.
package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/components/input"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/components/status"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/keymap"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/messages"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/styles"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// phase tracks what the input line currently means.
type phase int

const (
	// phaseIntro collects the numbered equipment fields.
	phaseIntro phase = iota

	// phaseChat is the question loop.
	phaseChat

	// phaseCorrection collects a replacement answer for the corrected verdict.
	phaseCorrection
)

// entryKind identifies who a transcript entry belongs to.
type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryInfo
	entryError
)

// entry is one transcript item.
type entry struct {
	kind      entryKind
	text      string
	sources   []domain.Source
	relevance float64
}

// ratedAnswer pairs a question with its answer for the feedback flow.
type ratedAnswer struct {
	question string
	answer   *domain.Answer
}

// Rating menu options.
const (
	optionHelpful    = "Helpful"
	optionNotHelpful = "Not helpful"
	optionCorrect    = "Correct the answer"
	optionCancel     = "Cancel"
)

// RateMenu is the verdict selection overlay for the last answer.
type RateMenu struct {
	options  []string
	selected int
	visible  bool
}

// Deps holds the services the chat view talks to. Query is required, the
// rest degrade gracefully when nil.
type Deps struct {
	Query    driving.QueryOrchestrator
	Feedback driving.FeedbackService
	Index    driving.IndexManager
	Sessions driven.SessionStore
}

// Config carries the chat session parameters.
type Config struct {
	// UserID identifies the user in session and feedback records.
	UserID string

	// UserName is the display name, when known.
	UserName string

	// InitialFields lists the equipment fields collected before the first
	// question. Empty skips the collection step.
	InitialFields []string

	// MaxHistoryChars caps the conversation history passed to the
	// orchestrator.
	MaxHistoryChars int
}

// View is the chat conversation view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ChatInput
	statusbar *status.Bar

	query    driving.QueryOrchestrator
	feedback driving.FeedbackService
	index    driving.IndexManager
	sessions driven.SessionStore
	ctx      context.Context

	cfg     Config
	session domain.Session
	history []domain.ConversationTurn

	phase        phase
	entries      []entry
	lines        []string
	scrollOffset int
	introBuf     []string

	waiting         bool
	clarifyFor      string
	clarifications  []string
	suppressClarify bool

	last     *ratedAnswer
	rateMenu *RateMenu

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a chat view bound to the given services.
func NewView(s *styles.Styles, km *keymap.KeyMap, deps Deps, cfg Config) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if cfg.UserID == "" {
		cfg.UserID = "local"
	}
	if cfg.MaxHistoryChars <= 0 {
		cfg.MaxHistoryChars = 6000
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewChatInput(s),
		statusbar: status.NewBar(s, km),
		query:     deps.Query,
		feedback:  deps.Feedback,
		index:     deps.Index,
		sessions:  deps.Sessions,
		ctx:       context.Background(),
		cfg:       cfg,
		session:   domain.NewSession(cfg.UserID, cfg.UserName, time.Now()),
		width:     80,
		height:    24,
	}

	if len(cfg.InitialFields) > 0 {
		v.phase = phaseIntro
		v.statusbar.SetState(status.StateIntro)
		v.appendEntry(entry{kind: entryInfo, text: v.introPrompt()})
	} else {
		v.phase = phaseChat
		v.appendEntry(entry{kind: entryInfo, text: "Ask a question about your documentation."})
	}

	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadStats())
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnswerReceived:
		return v, v.handleAnswerReceived(msg)

	case messages.ClarificationsReceived:
		v.handleClarificationsReceived(msg)
		return v, nil

	case messages.FeedbackSaved:
		v.handleFeedbackSaved(msg)
		return v, nil

	case messages.IndexStatsLoaded:
		v.handleIndexStatsLoaded(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.waiting = false
		v.err = msg.Err
		v.appendEntry(entry{kind: entryError, text: msg.Err.Error()})
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input. Anything no binding claims goes
// to the text input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.rateMenu != nil && v.rateMenu.visible {
		return v.handleRateMenuKey(msg)
	}

	switch {
	case key.Matches(msg, v.keymap.Cancel):
		if v.phase == phaseCorrection {
			v.exitCorrection()
			return v, nil
		}
		return v, func() tea.Msg { return messages.Quit{} }

	case key.Matches(msg, v.keymap.Send):
		return v.handleSubmit()

	case key.Matches(msg, v.keymap.Up):
		v.scrollBy(-1)
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.scrollBy(1)
		return v, nil

	case key.Matches(msg, v.keymap.PageUp):
		v.scrollBy(-v.visibleLines())
		return v, nil

	case key.Matches(msg, v.keymap.PageDown):
		v.scrollBy(v.visibleLines())
		return v, nil

	case key.Matches(msg, v.keymap.Rate):
		v.openRateMenu()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleSubmit routes an entered line according to the current phase.
func (v *View) handleSubmit() (*View, tea.Cmd) {
	text := strings.TrimSpace(v.input.Value())

	switch v.phase {
	case phaseIntro:
		return v.submitIntro(text)
	case phaseCorrection:
		return v.submitCorrection(text)
	default:
		return v.submitQuestion(text)
	}
}

// submitIntro accumulates numbered equipment lines. An empty submission
// closes the collection and parses what was entered.
func (v *View) submitIntro(text string) (*View, tea.Cmd) {
	if text != "" {
		v.introBuf = append(v.introBuf, text)
		v.appendEntry(entry{kind: entryUser, text: text})
		v.input.Reset()
		return v, nil
	}

	if len(v.introBuf) == 0 {
		v.appendEntry(entry{kind: entryInfo, text: "Enter the numbered fields first, one per line."})
		return v, nil
	}

	data, err := domain.ParseInitialData(strings.Join(v.introBuf, "\n"), v.cfg.InitialFields)
	if err != nil {
		v.appendEntry(entry{
			kind: entryError,
			text: fmt.Sprintf("I need at least %d numbered fields, like \"1. K-1402\". Add the missing lines and press enter again.",
				domain.MinInitialDataFields),
		})
		return v, nil
	}

	v.session.InitialData = data
	v.session.InitialDataAt = time.Now()
	v.saveSession()

	v.phase = phaseChat
	v.statusbar.SetState(status.StateReady)
	v.appendEntry(entry{kind: entryInfo, text: "Thanks, noted. Ask your question."})
	return v, nil
}

// submitQuestion runs one turn of the question loop. When clarifying
// questions are pending, a digit substitutes the chosen one and any other
// text is searched as typed; either way the next answer skips another
// clarification round.
func (v *View) submitQuestion(text string) (*View, tea.Cmd) {
	if text == "" || v.waiting {
		return v, nil
	}
	v.input.Reset()

	question := text
	if len(v.clarifications) > 0 {
		if idx, err := strconv.Atoi(text); err == nil && idx >= 1 && idx <= len(v.clarifications) {
			question = v.clarifyFor + ". " + v.clarifications[idx-1]
		}
		v.suppressClarify = true
		v.clarifications = nil
		v.clarifyFor = ""
	}

	v.appendEntry(entry{kind: entryUser, text: question})
	v.recordMessage(domain.RoleUser, question)

	v.waiting = true
	v.statusbar.SetState(status.StateThinking)
	return v, v.performAsk(question)
}

// submitCorrection records the typed replacement answer as a corrected
// verdict.
func (v *View) submitCorrection(text string) (*View, tea.Cmd) {
	if text == "" {
		return v, nil
	}
	v.input.Reset()
	v.exitCorrection()
	v.appendEntry(entry{kind: entryUser, text: text})
	return v, v.performFeedback(domain.VerdictCorrected, text)
}

// performAsk queries the orchestrator off the update loop.
func (v *View) performAsk(question string) tea.Cmd {
	history := make([]domain.ConversationTurn, len(v.history))
	copy(history, v.history)

	return func() tea.Msg {
		if v.query == nil {
			return messages.ErrorOccurred{Err: ErrNoQueryOrchestrator}
		}
		answer, err := v.query.Ask(v.ctx, question, history)
		return messages.AnswerReceived{Question: question, Answer: answer, Err: err}
	}
}

// performClarify fetches clarifying questions for an ambiguous query.
func (v *View) performClarify(question string) tea.Cmd {
	return func() tea.Msg {
		questions, err := v.query.Clarifications(v.ctx, question)
		return messages.ClarificationsReceived{Question: question, Questions: questions, Err: err}
	}
}

// performFeedback records a verdict on the last answer.
func (v *View) performFeedback(verdict domain.FeedbackVerdict, answerText string) tea.Cmd {
	last := v.last
	return func() tea.Msg {
		if last == nil || v.feedback == nil {
			return messages.FeedbackSaved{Verdict: verdict}
		}
		err := v.feedback.Record(v.ctx, domain.FeedbackEntry{
			At:        time.Now(),
			UserID:    v.cfg.UserID,
			Question:  last.question,
			Answer:    answerText,
			Sources:   last.answer.Sources,
			Relevance: last.answer.Relevance,
			Verdict:   verdict,
		})
		return messages.FeedbackSaved{Verdict: verdict, Err: err}
	}
}

// loadStats fetches knowledge-base statistics for the welcome line.
func (v *View) loadStats() tea.Cmd {
	if v.index == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := v.index.Stats(v.ctx)
		return messages.IndexStatsLoaded{Stats: stats, Err: err}
	}
}

// handleAnswerReceived folds an answer into the transcript and decides
// whether to start a clarification round.
func (v *View) handleAnswerReceived(msg messages.AnswerReceived) tea.Cmd {
	v.waiting = false

	if msg.Err != nil {
		v.err = msg.Err
		v.suppressClarify = false
		v.appendEntry(entry{kind: entryError, text: msg.Err.Error()})
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return nil
	}

	answer := msg.Answer
	v.err = nil
	v.appendEntry(entry{
		kind:      entryAssistant,
		text:      answer.Text,
		sources:   answer.Sources,
		relevance: answer.Relevance,
	})

	v.history = append(v.history,
		domain.ConversationTurn{Role: domain.RoleUser, Content: msg.Question},
		domain.ConversationTurn{Role: domain.RoleAssistant, Content: answer.Text},
	)
	v.history = domain.TrimHistory(v.history, v.cfg.MaxHistoryChars)
	v.recordMessage(domain.RoleAssistant, answer.Text)

	v.last = &ratedAnswer{question: msg.Question, answer: answer}
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	v.statusbar.SetRelevance(answer.Relevance)

	needClarify := answer.NeedsClarification && !v.suppressClarify
	v.suppressClarify = false
	if needClarify && v.query != nil {
		v.waiting = true
		v.statusbar.SetState(status.StateThinking)
		return v.performClarify(msg.Question)
	}
	return nil
}

// handleClarificationsReceived renders the numbered clarifying questions.
// Failures are silent: the answer itself already rendered.
func (v *View) handleClarificationsReceived(msg messages.ClarificationsReceived) {
	v.waiting = false
	v.statusbar.SetState(status.StateReady)

	if msg.Err != nil || len(msg.Questions) == 0 {
		return
	}

	v.clarifyFor = msg.Question
	v.clarifications = msg.Questions

	var b strings.Builder
	b.WriteString("Let me narrow this down. Reply with a number, or just rephrase:")
	for i, q := range msg.Questions {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, q))
	}
	v.appendEntry(entry{kind: entryInfo, text: b.String()})
	v.statusbar.SetMessage(fmt.Sprintf("reply 1-%d or ask differently", len(msg.Questions)))
}

// handleFeedbackSaved reports the feedback outcome.
func (v *View) handleFeedbackSaved(msg messages.FeedbackSaved) {
	if msg.Err != nil {
		v.appendEntry(entry{kind: entryError, text: "Feedback not saved: " + msg.Err.Error()})
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
	if msg.Verdict == domain.VerdictCorrected {
		v.appendEntry(entry{kind: entryInfo, text: "Correction saved."})
	} else {
		v.appendEntry(entry{kind: entryInfo, text: "Thanks, feedback recorded."})
	}
}

// handleIndexStatsLoaded adds the knowledge-base summary to the welcome
// text. Errors are ignored; the chat works without the numbers.
func (v *View) handleIndexStatsLoaded(msg messages.IndexStatsLoaded) {
	if msg.Err != nil || msg.Stats == nil {
		return
	}
	v.appendEntry(entry{
		kind: entryInfo,
		text: fmt.Sprintf("Knowledge base: %d files, %d fragments.",
			len(msg.Stats.IndexedFiles), msg.Stats.Fragments),
	})
}

// openRateMenu shows the verdict overlay for the last answer.
func (v *View) openRateMenu() {
	if v.last == nil {
		v.statusbar.SetMessage("Nothing to rate yet.")
		return
	}
	if v.feedback == nil {
		v.statusbar.SetMessage("Feedback store not configured.")
		return
	}
	v.rateMenu = &RateMenu{
		options:  []string{optionHelpful, optionNotHelpful, optionCorrect, optionCancel},
		selected: 0,
		visible:  true,
	}
	v.statusbar.SetState(status.StateRating)
}

// handleRateMenuKey processes keyboard input while the rating menu is open.
func (v *View) handleRateMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.rateMenu.selected > 0 {
			v.rateMenu.selected--
		}
	case key.Matches(msg, v.keymap.Down):
		if v.rateMenu.selected < len(v.rateMenu.options)-1 {
			v.rateMenu.selected++
		}
	case key.Matches(msg, v.keymap.Select):
		option := v.rateMenu.options[v.rateMenu.selected]
		v.rateMenu = nil
		return v.chooseRating(option)
	case key.Matches(msg, v.keymap.Cancel):
		v.rateMenu = nil
		v.statusbar.SetState(status.StateReady)
	default:
		// The menu is modal, so vim keys are free to use.
		switch msg.String() {
		case "k":
			if v.rateMenu.selected > 0 {
				v.rateMenu.selected--
			}
		case "j":
			if v.rateMenu.selected < len(v.rateMenu.options)-1 {
				v.rateMenu.selected++
			}
		}
	}
	return v, nil
}

// chooseRating executes the selected verdict option.
func (v *View) chooseRating(option string) (*View, tea.Cmd) {
	switch option {
	case optionHelpful:
		v.statusbar.SetState(status.StateReady)
		return v, v.performFeedback(domain.VerdictHelpful, v.last.answer.Text)
	case optionNotHelpful:
		v.statusbar.SetState(status.StateReady)
		return v, v.performFeedback(domain.VerdictNotHelpful, v.last.answer.Text)
	case optionCorrect:
		v.enterCorrection()
		return v, nil
	case optionCancel:
		v.statusbar.SetState(status.StateReady)
	}
	return v, nil
}

// enterCorrection switches the input line to correction entry.
func (v *View) enterCorrection() {
	v.phase = phaseCorrection
	v.input.SetLabel("Correction")
	v.input.SetPlaceholder("Type the corrected answer...")
	v.input.Reset()
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("enter to save, esc to cancel")
}

// exitCorrection returns the input line to question entry.
func (v *View) exitCorrection() {
	v.phase = phaseChat
	v.input.SetLabel("You")
	v.input.SetPlaceholder("Ask about your documentation...")
	v.statusbar.SetMessage("")
}

// recordMessage appends a transcript message to the session log.
func (v *View) recordMessage(role domain.Role, content string) {
	v.session.Messages = append(v.session.Messages, domain.SessionMessage{
		At:      time.Now(),
		Role:    role,
		Content: content,
	})
	v.saveSession()
}

// saveSession flushes the session log. Write errors surface in the status
// bar but never interrupt the chat.
func (v *View) saveSession() {
	if v.sessions == nil {
		return
	}
	if err := v.sessions.Save(v.session); err != nil {
		v.statusbar.SetMessage("session log unavailable")
	}
}

// introPrompt builds the initial data request.
func (v *View) introPrompt() string {
	var b strings.Builder
	b.WriteString("Welcome. Before we start, describe your equipment using the numbered fields below,")
	b.WriteString("\none line at a time. Press enter on an empty line when done.")
	for i, field := range v.cfg.InitialFields {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, field))
	}
	return b.String()
}

// appendEntry adds an item to the transcript and keeps the window pinned to
// the newest line.
func (v *View) appendEntry(e entry) {
	v.entries = append(v.entries, e)
	v.lines = append(v.lines, strings.Split(v.renderEntry(e), "\n")...)
	v.lines = append(v.lines, "")
	v.scrollOffsetToBottom()
}

// renderEntry renders one transcript item with the current width.
func (v *View) renderEntry(e entry) string {
	wrap := lipgloss.NewStyle().Width(v.textWidth())

	switch e.kind {
	case entryUser:
		label := v.styles.UserLabel.Render("You:")
		return label + "\n" + wrap.Inherit(v.styles.Normal).Render(e.text)

	case entryAssistant:
		label := v.styles.BotLabel.Render("lifta:")
		body := wrap.Inherit(v.styles.Normal).Render(e.text)
		out := label + "\n" + body
		if len(e.sources) > 0 {
			refs := make([]string, 0, len(e.sources))
			for _, src := range e.sources {
				refs = append(refs, formatSource(src))
			}
			out += "\n" + v.styles.SourceRef.Render("sources: "+strings.Join(refs, "; "))
		}
		if e.relevance > 0 {
			out += "\n" + v.styles.Muted.Render(fmt.Sprintf("relevance %.1f", e.relevance))
		}
		return out

	case entryError:
		return wrap.Inherit(v.styles.Error).Render(e.text)

	default:
		return wrap.Inherit(v.styles.Muted).Render(e.text)
	}
}

// formatSource renders a citation. Page 0 means the document has no page
// structure.
func formatSource(src domain.Source) string {
	if src.Page > 0 {
		return fmt.Sprintf("%s, p.%d", src.File, src.Page)
	}
	return src.File
}

// rebuildLines re-renders the whole transcript, after a resize.
func (v *View) rebuildLines() {
	v.lines = v.lines[:0]
	for _, e := range v.entries {
		v.lines = append(v.lines, strings.Split(v.renderEntry(e), "\n")...)
		v.lines = append(v.lines, "")
	}
	v.scrollOffsetToBottom()
}

// scrollBy moves the transcript window, clamped to its bounds.
func (v *View) scrollBy(delta int) {
	v.scrollOffset += delta
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
	if maximum := v.maxScrollOffset(); v.scrollOffset > maximum {
		v.scrollOffset = maximum
	}
}

func (v *View) scrollOffsetToBottom() {
	v.scrollOffset = v.maxScrollOffset()
}

func (v *View) maxScrollOffset() int {
	maximum := len(v.lines) - v.visibleLines()
	if maximum < 0 {
		return 0
	}
	return maximum
}

// visibleLines returns how many transcript lines fit between the header and
// the input area.
func (v *View) visibleLines() int {
	visible := v.height - 9
	if visible < 3 {
		return 3
	}
	return visible
}

func (v *View) textWidth() int {
	w := v.width - 4
	if w < 20 {
		return 20
	}
	return w
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("lifta"), "")

	visible := v.visibleLines()
	end := v.scrollOffset + visible
	if end > len(v.lines) {
		end = len(v.lines)
	}
	sections = append(sections, strings.Join(v.lines[v.scrollOffset:end], "\n"))

	if len(v.lines) > visible {
		percentage := 100
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("  [%d%%]", percentage)))
	}

	if v.rateMenu != nil && v.rateMenu.visible {
		sections = append(sections, "", v.renderRateMenu())
	}

	sections = append(sections, "", v.input.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRateMenu renders the verdict overlay.
func (v *View) renderRateMenu() string {
	lines := make([]string, 0, len(v.rateMenu.options))
	for i, option := range v.rateMenu.options {
		indicator := "  "
		if i == v.rateMenu.selected {
			indicator = "> "
		}

		var line string
		if i == v.rateMenu.selected {
			line = v.styles.Selected.Render(indicator + option)
		} else {
			line = v.styles.Normal.Render(indicator + option)
		}
		lines = append(lines, line)
	}

	menuStyle := v.styles.Border.Padding(0, 1)
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.rebuildLines()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Waiting reports whether a query is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// CollectingIntro reports whether the view is still gathering initial data.
func (v *View) CollectingIntro() bool {
	return v.phase == phaseIntro
}

// InCorrection reports whether the input line is in correction entry.
func (v *View) InCorrection() bool {
	return v.phase == phaseCorrection
}

// PendingClarifications returns the clarifying questions awaiting a reply.
func (v *View) PendingClarifications() []string {
	return v.clarifications
}

// RatingOpen reports whether the verdict overlay is showing.
func (v *View) RatingOpen() bool {
	return v.rateMenu != nil && v.rateMenu.visible
}

// History returns the trimmed conversation history.
func (v *View) History() []domain.ConversationTurn {
	return v.history
}

// Session returns the session record accumulated so far.
func (v *View) Session() domain.Session {
	return v.session
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputValue returns the current input line.
func (v *View) InputValue() string {
	return v.input.Value()
}

// Transcript returns the plain-text transcript, for inspection.
func (v *View) Transcript() string {
	var b strings.Builder
	for i, e := range v.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		switch e.kind {
		case entryUser:
			b.WriteString("You: ")
		case entryAssistant:
			b.WriteString("lifta: ")
		case entryError:
			b.WriteString("error: ")
		case entryInfo:
			// no speaker
		}
		b.WriteString(e.text)
	}
	return b.String()
}
