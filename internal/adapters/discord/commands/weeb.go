package commands

import (
	"context"
	"errors"
	"log/slog"

	"yasen/internal/adapters/discord/formatting"
	"yasen/internal/core/domain"
	"yasen/internal/core/ports"
)

func (h *BotHandler) weebCommands() []*Command {
	return []*Command{
		{
			Name:    "kanna",
			Group:   GroupWeeb,
			Help:    usage("Display a random Kanna image.", "`{prefix}kanna`"),
			Handler: h.booruOrLocal([]string{"kanna_kamui"}, func() []string { return h.deps.Assets.Kanna }),
		},
		{
			Name:    "karen",
			Group:   GroupWeeb,
			Help:    usage("Display a random Karen image.", "`{prefix}karen`"),
			Handler: h.booruOrLocal([]string{"kujou_karen"}, func() []string { return h.deps.Assets.Karen }),
		},
		{
			Name:    "umi",
			Group:   GroupWeeb,
			Help:    usage("Display a random Umi image.", "`{prefix}umi`"),
			Handler: h.Umi,
		},
		{
			Name:    "ayaya",
			Group:   GroupWeeb,
			Help:    usage("Ayaya!", "`{prefix}ayaya`"),
			Handler: h.localFile(func() string { return h.deps.Assets.Ayaya }),
		},
		{
			Name:    "chensaw",
			Group:   GroupWeeb,
			Help:    usage("Display a chensaw gif.", "`{prefix}chensaw`"),
			Handler: h.localFile(func() string { return h.deps.Assets.Chensaw }),
		},
		{
			Name:    "joke",
			Group:   GroupWeeb,
			Help:    usage("Is Joke!", "`{prefix}joke`"),
			Handler: h.Joke,
		},
	}
}

func (h *BotHandler) nsfwCommands() []*Command {
	return []*Command{
		{
			Name:    "booru",
			Aliases: []string{"lewdsearch"},
			Group:   GroupNsfw,
			Params:  []Param{{Name: "tags", Greedy: true}},
			Checks:  []Check{NSFWOnly},
			Help:    usage("Search a booru board for an image with the given tags.", "`{prefix}booru tag1 tag2`"),
			Handler: h.Booru,
		},
	}
}

// booruOrLocal searches the safe board and falls back to a random local file.
func (h *BotHandler) booruOrLocal(tags []string, files func() []string) HandlerFunc {
	return func(ctx context.Context, req *Request) ([]Response, error) {
		img, err := h.deps.SafeBooru.Random(ctx, tags)
		if err == nil {
			return []Response{Text(img.URL)}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("Booru search failed, using local images", "tags", tags, "error", err)
		}

		local := files()
		if len(local) == 0 {
			return []Response{Text(formatting.MsgNoImage)}, nil
		}
		f, err := openFile(h.pick(local))
		if err != nil {
			return nil, err
		}
		return []Response{f}, nil
	}
}

func (h *BotHandler) localFile(path func() string) HandlerFunc {
	return func(ctx context.Context, req *Request) ([]Response, error) {
		p := path()
		if p == "" {
			return []Response{Text(formatting.MsgNoImage)}, nil
		}
		f, err := openFile(p)
		if err != nil {
			return nil, err
		}
		return []Response{f}, nil
	}
}

func (h *BotHandler) Umi(ctx context.Context, req *Request) ([]Response, error) {
	return searchImage(ctx, req, h.deps.SafeBooru, []string{"sonoda_umi"})
}

func (h *BotHandler) Joke(ctx context.Context, req *Request) ([]Response, error) {
	return []Response{Text(formatting.MsgJoke)}, nil
}

func (h *BotHandler) Booru(ctx context.Context, req *Request) ([]Response, error) {
	return searchImage(ctx, req, h.deps.NSFWBooru, req.Args.Fields("tags"))
}

func searchImage(ctx context.Context, req *Request, searcher ports.ImageSearcher, tags []string) ([]Response, error) {
	img, err := searcher.Random(ctx, tags)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return []Response{Text(formatting.MsgNoImage)}, nil
	case err != nil:
		return upstreamFailed(req, "booru", err), nil
	}
	return []Response{Text(img.URL)}, nil
}
