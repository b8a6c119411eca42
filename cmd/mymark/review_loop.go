package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mymark/internal/archive"
	"mymark/internal/notifications"
	"mymark/internal/review"
)

// suggestedReasons mirrors the reason choices the mobile overlay offers.
// Any free text is accepted as well.
var suggestedReasons = map[review.DispositionKind][]string{
	review.DispositionReport:   {"Impersonation", "Inappropriate Content", "Privacy Violation", "Other"},
	review.DispositionTakedown: {"Copyright", "Personal Privacy", "Legal", "Other"},
}

// runReviewLoop drives one session over a line-based prompt. It is the
// presentation shell: it only renders what the session reports and turns
// input lines into engine calls.
func runReviewLoop(ctx context.Context, session *review.Session, store *archive.Store, dispatcher *notifications.Dispatcher, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	resolved := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		item, ok := session.Current()
		if !ok {
			break
		}
		renderCard(out, item, session.PendingReasonKind(), len(session.Pending()))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			// Input exhausted: leave the remaining queue for a later session.
			break
		}
		line := strings.TrimSpace(scanner.Text())

		var quit bool
		var err error
		if kind := session.PendingReasonKind(); kind != review.DispositionNone {
			err = handleReasonInput(session, kind, line)
		} else {
			quit, err = handleIntent(session, item.ID, line, out)
		}
		if err != nil {
			// Rejected preconditions are transient: surface and re-render.
			fmt.Fprintf(out, "  ! %v\n\n", err)
			continue
		}
		if quit {
			break
		}

		if newCount := len(session.History()); newCount > resolved {
			resolved = newCount
			entry := session.History()[newCount-1]
			if _, archiveErr := store.Append(ctx, session.Subject(), session.ID(), entry); archiveErr != nil {
				fmt.Fprintf(out, "  ! archive: %v\n", archiveErr)
			}
			fmt.Fprintf(out, "  -> %s\n\n", entry.Disposition.String())
		}
	}

	if _, ok := session.Current(); !ok {
		fmt.Fprintln(out, "No potential images left. Nice.")
	}
	if resolved > 0 {
		dispatcher.SessionComplete(session.Subject(), resolved)
	}
	printHistory(out, session.History())
	return nil
}

func renderCard(out io.Writer, item review.MatchItem, overlay review.DispositionKind, pending int) {
	fmt.Fprintf(out, "Match #%d  (%d pending)\n", item.ID, pending)
	fmt.Fprintf(out, "  image: %s\n", item.ImageRef)
	fmt.Fprintf(out, "  site:  %s\n", item.SiteURL)

	if overlay == review.DispositionNone {
		fmt.Fprintln(out, "  [a]pprove  [p]osted by me  [r]eport  [t]akedown  [h]istory  [q]uit")
		fmt.Fprint(out, "> ")
		return
	}

	fmt.Fprintf(out, "  %s reason (choose a number, type your own, or [c]ancel):\n", overlay.Label())
	for i, reason := range suggestedReasons[overlay] {
		fmt.Fprintf(out, "    %d. %s\n", i+1, reason)
	}
	fmt.Fprint(out, "reason> ")
}

func handleIntent(session *review.Session, itemID int64, line string, out io.Writer) (quit bool, err error) {
	switch strings.ToLower(line) {
	case "a", "approve":
		return false, session.ResolveDirect(itemID, review.DispositionApprove)
	case "p", "posted":
		return false, session.ResolveDirect(itemID, review.DispositionSelfPosted)
	case "r", "report":
		return false, session.BeginReasonCapture(itemID, review.DispositionReport)
	case "t", "takedown":
		return false, session.BeginReasonCapture(itemID, review.DispositionTakedown)
	case "h", "history":
		printHistory(out, session.History())
		return false, nil
	case "q", "quit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown action %q", line)
	}
}

func handleReasonInput(session *review.Session, kind review.DispositionKind, line string) error {
	if strings.EqualFold(line, "c") || strings.EqualFold(line, "cancel") {
		session.CancelReasonCapture()
		return nil
	}
	reason := line
	if choice, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil {
		reasons := suggestedReasons[kind]
		if choice < 1 || choice > len(reasons) {
			return fmt.Errorf("choose between 1 and %d", len(reasons))
		}
		reason = reasons[choice-1]
	}
	return session.SubmitReason(reason)
}

func printHistory(out io.Writer, entries []review.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No resolutions yet.")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.Item.ID, 10),
			entry.Item.SiteURL,
			entry.Disposition.String(),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Site", "Disposition"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
}
