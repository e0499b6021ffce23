// Package bot implements the conversational layer: it classifies free-text
// messages, walks users through identifying and confirming books, and
// drives the reading progress and calibration dialogues on top of the
// service layer.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/errors"
	"github.com/myscribe/myscribe-server/internal/normalize"
	"github.com/myscribe/myscribe-server/internal/service"
	"github.com/myscribe/myscribe-server/internal/texts"
)

const defaultCalibrationDelay = 5 * time.Second

// Flow drives the conversation. One Handle call runs at a time per user;
// the session lock enforces that.
type Flow struct {
	profile     *service.ProfileService
	resolver    *service.ResolverService
	shelf       *service.ShelfService
	progress    *service.ProgressService
	calibration *service.CalibrationService

	sender   Sender
	sessions *Sessions
	logger   *slog.Logger

	// calibrationDelay is the pause between announcing the speed test
	// and showing the passage, so the user is ready before the clock
	// starts.
	calibrationDelay time.Duration
}

// Option configures a Flow.
type Option func(*Flow)

// WithCalibrationDelay overrides the pause before the calibration
// passage is shown.
func WithCalibrationDelay(d time.Duration) Option {
	return func(f *Flow) {
		f.calibrationDelay = d
	}
}

// NewFlow wires the conversation layer.
func NewFlow(
	profile *service.ProfileService,
	resolver *service.ResolverService,
	shelf *service.ShelfService,
	progress *service.ProgressService,
	calibration *service.CalibrationService,
	sender Sender,
	logger *slog.Logger,
	opts ...Option,
) *Flow {
	f := &Flow{
		profile:          profile,
		resolver:         resolver,
		shelf:            shelf,
		progress:         progress,
		calibration:      calibration,
		sender:           sender,
		sessions:         NewSessions(),
		logger:           logger,
		calibrationDelay: defaultCalibrationDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Handle processes one incoming event end to end. Errors reaching the
// user are already phrased for them; everything else is logged and
// answered with a generic apology.
func (f *Flow) Handle(ctx context.Context, in *Incoming) error {
	sess, release := f.sessions.Acquire(in.UserID)
	defer release()

	user, created, err := f.profile.EnsureUser(ctx, in.UserID, in.DisplayName)
	if err != nil {
		return f.fail(ctx, sess, err)
	}

	if in.IsCallback() {
		return f.handleCallback(ctx, sess, in.CallbackData)
	}
	return f.handleMessage(ctx, sess, user, created, in.Text)
}

func (f *Flow) handleMessage(ctx context.Context, sess *Session, user *domain.User, created bool, text string) error {
	text = strings.TrimSpace(text)

	// Commands cut through whatever state the conversation is in.
	if strings.HasPrefix(text, "/") {
		return f.handleCommand(ctx, sess, user, text)
	}

	switch sess.State {
	case StateAwaitingTitle:
		return f.beginIdentification(ctx, sess, text)
	case StateAwaitingAuthor:
		return f.handleAuthorReply(ctx, sess, text)
	case StateAwaitingPageCount:
		return f.handlePageCountReply(ctx, sess, text)
	case StateAwaitingGenre:
		sess.Draft.Genre = normalize.Genre(text)
		return f.sendReview(ctx, sess)
	case StateAwaitingLanguage:
		sess.Draft.Language = normalize.Language(text)
		return f.sendReview(ctx, sess)
	case StateAwaitingPagesRead:
		return f.handlePagesReply(ctx, sess, text)
	case StateAwaitingRating:
		return f.handleRatingReply(ctx, sess, text)
	case StateAwaitingConfirmation, StateAwaitingReview:
		return f.send(ctx, sess, Outgoing{Text: "Please use the buttons above to answer."})
	case StateCalibrating:
		return f.send(ctx, sess, Outgoing{Text: "Take your time. Press the button when you finish the passage."})
	}

	return f.handleIdle(ctx, sess, user, created, text)
}

// handleIdle classifies a message arriving outside any dialogue.
func (f *Flow) handleIdle(ctx context.Context, sess *Session, user *domain.User, created bool, text string) error {
	intent, title := Detect(text)

	switch intent {
	case IntentGreeting:
		return f.greet(ctx, sess, user, created)
	case IntentReading, IntentFinished, IntentWishlist:
		sess.Intent = intentStatus(intent)
		if title == "" {
			sess.State = StateAwaitingTitle
			return f.send(ctx, sess, Outgoing{Text: "Which book do you mean?"})
		}
		return f.beginIdentification(ctx, sess, title)
	}

	return f.send(ctx, sess, Outgoing{
		Text: "I did not catch that. Tell me about a book, for example \"I am reading Dune\", or use /start for an overview.",
	})
}

func (f *Flow) greet(ctx context.Context, sess *Session, user *domain.User, created bool) error {
	greeting := fmt.Sprintf("Hello %s!", user.DisplayName)
	if user.DisplayName == "" {
		greeting = "Hello!"
	}
	if created {
		return f.send(ctx, sess, Outgoing{Text: greeting + "\n\n" + texts.Welcome})
	}
	return f.send(ctx, sess, Outgoing{Text: greeting + " What are you reading these days?"})
}

func (f *Flow) handleCommand(ctx context.Context, sess *Session, user *domain.User, text string) error {
	cmd, _, _ := strings.Cut(text, " ")

	switch cmd {
	case "/start":
		sess.Reset()
		return f.greet(ctx, sess, user, true)
	case "/readingabook":
		sess.Reset()
		sess.Intent = domain.StatusReading
		sess.State = StateAwaitingTitle
		return f.send(ctx, sess, Outgoing{Text: "Which book are you reading?"})
	case "/finishedabook":
		sess.Reset()
		sess.Intent = domain.StatusCompleted
		sess.State = StateAwaitingTitle
		return f.send(ctx, sess, Outgoing{Text: "Which book did you finish?"})
	case "/wishlistabook":
		sess.Reset()
		sess.Intent = domain.StatusWishlist
		sess.State = StateAwaitingTitle
		return f.send(ctx, sess, Outgoing{Text: "Which book do you want to read?"})
	case "/calculate_reading_speed":
		sess.Reset()
		return f.startCalibration(ctx, sess)
	case "/mybooks":
		sess.Reset()
		return f.sendShelf(ctx, sess)
	case "/cancel":
		sess.Reset()
		return f.send(ctx, sess, Outgoing{Text: "Okay, never mind."})
	}
	return f.send(ctx, sess, Outgoing{Text: "I do not know that command."})
}

// beginIdentification starts resolving a title. A book already on record
// skips straight to shelving; otherwise the author is asked for before
// the catalog search.
func (f *Flow) beginIdentification(ctx context.Context, sess *Session, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		sess.State = StateAwaitingTitle
		return f.send(ctx, sess, Outgoing{Text: "I still need the book's title."})
	}
	sess.Title = title

	book, err := f.resolver.Lookup(ctx, title)
	if err == nil {
		return f.fileStatus(ctx, sess, book.Title)
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return f.fail(ctx, sess, err)
	}

	sess.State = StateAwaitingAuthor
	return f.send(ctx, sess, Outgoing{
		Text: fmt.Sprintf("I do not know %q yet. Who wrote it? Say no if you are not sure.", title),
	})
}

func (f *Flow) handleAuthorReply(ctx context.Context, sess *Session, text string) error {
	if !IsNegative(text) {
		sess.Author = strings.TrimSpace(text)
	}

	res, err := f.resolver.Resolve(ctx, sess.Title, sess.Author)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			title := sess.Title
			sess.Reset()
			return f.send(ctx, sess, Outgoing{
				Text: fmt.Sprintf("Sorry, I could not find %q anywhere. Check the spelling and try again.", title),
			})
		}
		return f.fail(ctx, sess, err)
	}

	if res.FromStore() {
		return f.fileStatus(ctx, sess, res.Book.Title)
	}

	sess.Candidates = res.Candidates
	sess.Cursor = 0
	sess.State = StateAwaitingConfirmation
	return f.presentCandidate(ctx, sess)
}

// presentCandidate shows the candidate under the cursor with a confirm
// and a next button. Next wraps around to the first candidate.
func (f *Flow) presentCandidate(ctx context.Context, sess *Session) error {
	book := sess.Candidate()
	return f.send(ctx, sess, Outgoing{
		Text:     book.Summary() + "\n\nIs this your book?",
		PhotoURL: book.CoverURL,
		Actions: []Action{
			{Label: "Yes", Data: ActionConfirmBook},
			{Label: "No, next", Data: ActionNextBook},
		},
	})
}

func (f *Flow) handleCallback(ctx context.Context, sess *Session, data string) error {
	switch data {
	case ActionConfirmBook:
		if sess.State != StateAwaitingConfirmation || sess.Candidate() == nil {
			return nil
		}
		draft := *sess.Candidate()
		sess.Draft = &draft
		if !sess.Draft.HasPageCount() {
			sess.State = StateAwaitingPageCount
			return f.send(ctx, sess, Outgoing{
				Text: "I could not find a page count for this edition. How many pages does your copy have?",
			})
		}
		return f.sendReview(ctx, sess)

	case ActionNextBook:
		if sess.State != StateAwaitingConfirmation || sess.Candidate() == nil {
			return nil
		}
		sess.Advance()
		return f.presentCandidate(ctx, sess)

	case ActionChangeGenre:
		if sess.State != StateAwaitingReview {
			return nil
		}
		sess.State = StateAwaitingGenre
		return f.send(ctx, sess, Outgoing{Text: "What genre should I file it under?"})

	case ActionChangeLanguage:
		if sess.State != StateAwaitingReview {
			return nil
		}
		sess.State = StateAwaitingLanguage
		return f.send(ctx, sess, Outgoing{Text: "What language is it in?"})

	case ActionLooksGood:
		if sess.State != StateAwaitingReview {
			return nil
		}
		if err := f.resolver.Persist(ctx, sess.Draft); err != nil {
			return f.fail(ctx, sess, err)
		}
		return f.fileStatus(ctx, sess, sess.Draft.Title)

	case ActionReadingDone:
		return f.finishCalibration(ctx, sess)
	}

	f.logger.Warn("unknown callback", "user", sess.UserID, "data", data)
	return nil
}

func (f *Flow) handlePageCountReply(ctx context.Context, sess *Session, text string) error {
	pages, ok := ExtractNumber(text)
	if !ok || pages <= 0 {
		return f.send(ctx, sess, Outgoing{Text: "I need the number of pages, for example 320."})
	}
	sess.Draft.TotalPages = pages
	return f.sendReview(ctx, sess)
}

// sendReview shows the full draft and offers edits before it is saved.
func (f *Flow) sendReview(ctx context.Context, sess *Session) error {
	sess.State = StateAwaitingReview
	return f.send(ctx, sess, Outgoing{
		Text: "Here is what I have:\n\n" + sess.Draft.Details() + "\n\nAnything to correct?",
		Actions: []Action{
			{Label: "Change genre", Data: ActionChangeGenre},
			{Label: "Change language", Data: ActionChangeLanguage},
			{Label: "Looks good", Data: ActionLooksGood},
		},
	})
}

// fileStatus shelves the identified book under the session's intent and
// continues the dialogue the status calls for. A conflict with an
// existing record is routed rather than reported: finishing a book you
// are reading completes it, mentioning a book you are reading opens the
// pages dialogue.
func (f *Flow) fileStatus(ctx context.Context, sess *Session, title string) error {
	status := sess.Intent
	if status == "" {
		status = domain.StatusReading
	}

	_, err := f.shelf.Track(ctx, sess.UserID, title, status)
	if err != nil {
		if errors.Is(err, errors.ErrConflict) {
			return f.routeConflict(ctx, sess, title, status)
		}
		return f.fail(ctx, sess, err)
	}

	switch status {
	case domain.StatusReading:
		sess.Title = title
		sess.State = StateAwaitingPagesRead
		sess.Candidates, sess.Draft = nil, nil
		return f.send(ctx, sess, Outgoing{
			Text: fmt.Sprintf("Filed %q as currently reading. How many pages have you read so far? Say no if you have not started.", title),
		})
	case domain.StatusCompleted:
		if err := f.progress.Complete(ctx, sess.UserID, title); err != nil && !errors.Is(err, errors.ErrConflict) {
			return f.fail(ctx, sess, err)
		}
		return f.askRating(ctx, sess, title)
	default:
		sess.Reset()
		return f.send(ctx, sess, Outgoing{
			Text: fmt.Sprintf("Added %q to your wishlist.", title),
		})
	}
}

// routeConflict handles a book that is already on the shelf.
func (f *Flow) routeConflict(ctx context.Context, sess *Session, title string, status domain.ReadingStatus) error {
	entry, err := f.shelf.Entry(ctx, sess.UserID, title)
	if err != nil {
		return f.fail(ctx, sess, err)
	}

	switch {
	case status == domain.StatusCompleted && entry.Status == domain.StatusReading:
		if err := f.progress.Complete(ctx, sess.UserID, title); err != nil {
			return f.fail(ctx, sess, err)
		}
		return f.askRating(ctx, sess, title)

	case status == domain.StatusReading && entry.Status == domain.StatusReading:
		sess.Title = title
		sess.State = StateAwaitingPagesRead
		return f.send(ctx, sess, Outgoing{
			Text: fmt.Sprintf("You are already reading %q. How many pages did you get through?", title),
		})
	}

	sess.Reset()
	return f.send(ctx, sess, Outgoing{
		Text: fmt.Sprintf("%q is already on your shelf as %s.", title, entry.Status),
	})
}

func (f *Flow) handlePagesReply(ctx context.Context, sess *Session, text string) error {
	if IsNegative(text) {
		title := sess.Title
		sess.Reset()
		return f.send(ctx, sess, Outgoing{
			Text: fmt.Sprintf("Alright. Tell me whenever you make progress on %q.", title),
		})
	}

	pages, ok := ExtractNumber(text)
	if !ok {
		return f.send(ctx, sess, Outgoing{Text: "Give me a number of pages, or say no to skip."})
	}

	result, err := f.progress.RecordPages(ctx, sess.UserID, sess.Title, pages)
	if err != nil {
		if errors.Is(err, errors.ErrValidation) {
			return f.send(ctx, sess, Outgoing{Text: "Pages read must be a positive number. Try again."})
		}
		return f.fail(ctx, sess, err)
	}

	if result.Completed {
		title := sess.Title
		return f.askRating(ctx, sess, title)
	}

	text = fmt.Sprintf("Got it, %d pages so far.", result.PagesRead)
	if result.PagesRemaining > 0 {
		text = fmt.Sprintf("Got it, %d pages down, %d to go. At your pace that is about %s of reading left.",
			result.PagesRead, result.PagesRemaining, result.TimeLeftText())
	}
	sess.Reset()
	return f.send(ctx, sess, Outgoing{Text: text})
}

func (f *Flow) askRating(ctx context.Context, sess *Session, title string) error {
	sess.Reset()
	sess.Title = title
	sess.State = StateAwaitingRating
	return f.send(ctx, sess, Outgoing{
		Text: fmt.Sprintf("Congratulations on finishing %q! How would you rate it, 1 to 5?", title),
	})
}

func (f *Flow) handleRatingReply(ctx context.Context, sess *Session, text string) error {
	rating, ok := ExtractNumber(text)
	if !ok {
		return f.send(ctx, sess, Outgoing{Text: "Just a number between 1 and 5, please."})
	}

	err := f.progress.Rate(ctx, sess.UserID, sess.Title, rating)
	if err != nil {
		if errors.Is(err, errors.ErrValidation) {
			return f.send(ctx, sess, Outgoing{Text: "Ratings go from 1 to 5. Try again."})
		}
		return f.fail(ctx, sess, err)
	}

	title := sess.Title
	sess.Reset()
	return f.send(ctx, sess, Outgoing{
		Text: fmt.Sprintf("Noted, %q rated %d out of 5. Thanks!", title, rating),
	})
}

// startCalibration announces the speed test, pauses so the user can get
// ready, then shows the passage and starts the clock.
func (f *Flow) startCalibration(ctx context.Context, sess *Session) error {
	err := f.send(ctx, sess, Outgoing{
		Text: "Let's measure your reading speed. I will show you a short passage in a moment. Read it at your normal pace and press the button the instant you finish.",
	})
	if err != nil {
		return err
	}

	select {
	case <-time.After(f.calibrationDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	cal := f.calibration.Start(sess.UserID)
	sess.Calibration = cal
	sess.State = StateCalibrating
	return f.send(ctx, sess, Outgoing{
		Text: cal.Passage,
		Actions: []Action{
			{Label: "I'm done reading", Data: ActionReadingDone},
		},
	})
}

func (f *Flow) finishCalibration(ctx context.Context, sess *Session) error {
	if sess.State != StateCalibrating || sess.Calibration == nil {
		return nil
	}

	wpm, err := f.calibration.Finish(ctx, sess.Calibration)
	if err != nil {
		if errors.Is(err, errors.ErrValidation) {
			return f.send(ctx, sess, Outgoing{
				Text: "That was too quick to be a real read. Keep the passage open and press the button only when you actually finish.",
			})
		}
		return f.fail(ctx, sess, err)
	}

	sess.Reset()
	return f.send(ctx, sess, Outgoing{
		Text: fmt.Sprintf("You read %d words per minute. I will use that for your time-left estimates from now on.", wpm),
	})
}

// sendShelf lists everything the user is tracking, grouped by status.
func (f *Flow) sendShelf(ctx context.Context, sess *Session) error {
	items, err := f.shelf.Shelf(ctx, sess.UserID, "")
	if err != nil {
		return f.fail(ctx, sess, err)
	}
	if len(items) == 0 {
		return f.send(ctx, sess, Outgoing{Text: "Your shelf is empty. Tell me about a book to get started."})
	}

	var b strings.Builder
	b.WriteString("Your shelf:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "\n%s", item.Book.Title)
		if item.Book.Author != "" {
			fmt.Fprintf(&b, " by %s", item.Book.Author)
		}
		fmt.Fprintf(&b, " [%s]", item.Entry.Status)
		switch {
		case item.Entry.Status == domain.StatusReading && item.Entry.PagesRead != nil:
			fmt.Fprintf(&b, " %d pages in", *item.Entry.PagesRead)
			if item.Entry.TimeLeft != nil {
				fmt.Fprintf(&b, ", about %s left", domain.FormatMinutes(*item.Entry.TimeLeft))
			}
		case item.Entry.Status == domain.StatusCompleted && item.Entry.Rating != nil:
			fmt.Fprintf(&b, " rated %d/5", *item.Entry.Rating)
		}
	}
	return f.send(ctx, sess, Outgoing{Text: b.String()})
}

func intentStatus(intent Intent) domain.ReadingStatus {
	switch intent {
	case IntentFinished:
		return domain.StatusCompleted
	case IntentWishlist:
		return domain.StatusWishlist
	default:
		return domain.StatusReading
	}
}

func (f *Flow) send(ctx context.Context, sess *Session, msg Outgoing) error {
	return f.sender.Send(ctx, sess.UserID, msg)
}

// fail logs an unexpected error, resets the dialogue, and apologizes.
func (f *Flow) fail(ctx context.Context, sess *Session, err error) error {
	f.logger.Error("conversation error", "user", sess.UserID, "error", err)
	sess.Reset()
	if sendErr := f.send(ctx, sess, Outgoing{Text: "Something went wrong on my end. Let's start over."}); sendErr != nil {
		return sendErr
	}
	return err
}
