package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/musicvideos/internal/client/models"
)

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	artist, err := getSimpleText(a.reader, "Artist", a.out)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "URL", a.out)
	if err != nil {
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	v, err := a.videos.Add(callCtx, title, artist, url)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Added video %d\n", v.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	list, err := a.videos.List(callCtx)
	if err != nil {
		return a.report(ctx, err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No videos yet, use 'add'")
		return nil
	}
	return printVideos(a, list)
}

// Search accepts "search <title|artist> <term...>" and prompts for whatever
// is missing. Matching ignores case.
func (a *App) Search(ctx context.Context, args []string) error {
	var field, term string
	if len(args) > 0 {
		field = strings.ToLower(args[0])
		term = strings.Join(args[1:], " ")
	} else {
		s, err := getSimpleText(a.reader, "Search by (title/artist)", a.out)
		if err != nil {
			return err
		}
		field = strings.ToLower(strings.TrimSpace(s))
	}

	if field != "title" && field != "artist" {
		err := fmt.Errorf("unknown search field %q, use title or artist", field)
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if term == "" {
		s, err := getSimpleText(a.reader, "Search term", a.out)
		if err != nil {
			return err
		}
		term = s
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	list, err := a.videos.Search(callCtx, field, term)
	if err != nil {
		return a.report(ctx, err)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No matching videos")
		return nil
	}
	return printVideos(a, list)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.videoID(args, "Enter video id to show")
	if err != nil {
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	v, err := a.videos.Get(callCtx, id)
	if err != nil {
		return a.report(ctx, err)
	}

	printVideo(a, v)
	return nil
}

// Edit prompts for each field showing the current value; an empty answer
// keeps it.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.videoID(args, "Enter video id to edit")
	if err != nil {
		return err
	}

	getCtx, cancel := a.callCtx(ctx)
	v, err := a.videos.Get(getCtx, id)
	cancel()
	if err != nil {
		return a.report(ctx, err)
	}

	if v.Title, err = GetTextWithDefault(a.reader, "Title", v.Title, a.out); err != nil {
		return err
	}
	if v.Artist, err = GetTextWithDefault(a.reader, "Artist", v.Artist, a.out); err != nil {
		return err
	}
	if v.URL, err = GetTextWithDefault(a.reader, "URL", v.URL, a.out); err != nil {
		return err
	}

	updCtx, cancel := a.callCtx(ctx)
	defer cancel()

	updated, err := a.videos.Update(updCtx, v)
	if err != nil {
		return a.report(ctx, err)
	}

	printVideo(a, updated)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.videoID(args, "Enter video id to delete")
	if err != nil {
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.videos.Delete(callCtx, id); err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Deleted video %d\n", id)
	return nil
}

// videoID takes the id from the first argument or asks for it.
func (a *App) videoID(args []string, prompt string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		s, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return 0, err
		}
		raw = s
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		err = fmt.Errorf("invalid video id %q", raw)
		fmt.Fprintln(a.out, err.Error())
		return 0, err
	}
	return id, nil
}

func printVideos(a *App, list []*models.Video) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tARTIST\tTITLE\tADDED")
	for _, v := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", v.ID, v.Artist, v.Title, v.CreatedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

func printVideo(a *App, v *models.Video) {
	fmt.Fprintf(a.out, "#%d %s - %s\n", v.ID, v.Artist, v.Title)
	fmt.Fprintf(a.out, "URL:   %s\n", v.URL)
	fmt.Fprintf(a.out, "Added: %s\n", v.CreatedAt.Local().Format("2006-01-02 15:04"))
}
