package commands

import (
	"context"
	"math"
	"strconv"
	"strings"

	"yasen/internal/adapters/discord/formatting"
)

const (
	maxRolls   = 100
	maxRepeats = 5
)

func (h *BotHandler) funCommands() []*Command {
	return []*Command{
		{
			Name:    "kyubey",
			Group:   GroupFun,
			Help:    usage("Madoka is best anime ever.", "`{prefix}kyubey`"),
			Handler: h.Kyubey,
		},
		{
			Name:    "roll",
			Group:   GroupFun,
			Params:  []Param{{Name: "dice"}},
			Help:    usage("Roll dice in NdN format.", "`{prefix}roll 2d6`"),
			Handler: h.Roll,
		},
		{
			Name:    "choose",
			Group:   GroupFun,
			Params:  []Param{{Name: "choices", Greedy: true}},
			Help:    usage("Choose between multiple choices.", "`{prefix}choose tea coffee`"),
			Handler: h.Choose,
		},
		{
			Name:  "salt",
			Group: GroupFun,
			Params: []Param{
				{Name: "percentage"},
				{Name: "tries", Kind: KindInt},
			},
			Help:    usage("Chance of an event happening at least once in a number of tries.", "`{prefix}salt 5% 20`", "`{prefix}salt 0.05 20`"),
			Handler: h.Salt,
		},
		{
			Name:  "repeat",
			Group: GroupFun,
			Params: []Param{
				{Name: "times", Kind: KindInt},
				{Name: "message", Greedy: true},
			},
			Help:    usage("Repeat a message up to 5 times.", "`{prefix}repeat 3 hello`"),
			Handler: h.Repeat,
		},
		{
			Name:    "lewd",
			Group:   GroupFun,
			Help:    usage("Display a lewd reaction.", "`{prefix}lewd`"),
			Handler: h.Lewd,
		},
	}
}

func (h *BotHandler) Kyubey(ctx context.Context, req *Request) ([]Response, error) {
	return []Response{Text(formatting.MsgKyubey)}, nil
}

func (h *BotHandler) Roll(ctx context.Context, req *Request) ([]Response, error) {
	rolls, limit, ok := parseDice(req.Args.String("dice"))
	if !ok {
		return []Response{Text(formatting.MsgRollFormat)}, nil
	}
	if rolls > maxRolls {
		return []Response{Text(formatting.MsgBreakMe)}, nil
	}

	results := make([]string, rolls)
	for i := range results {
		results[i] = strconv.Itoa(h.intn(limit) + 1)
	}
	return []Response{Text(strings.Join(results, ", "))}, nil
}

func parseDice(dice string) (int, int, bool) {
	n, sides, found := strings.Cut(strings.ToLower(dice), "d")
	if !found {
		return 0, 0, false
	}
	rolls, err := strconv.Atoi(n)
	if err != nil || rolls < 1 {
		return 0, 0, false
	}
	limit, err := strconv.Atoi(sides)
	if err != nil || limit < 1 {
		return 0, 0, false
	}
	return rolls, limit, true
}

func (h *BotHandler) Choose(ctx context.Context, req *Request) ([]Response, error) {
	return []Response{Text(h.pick(req.Args.Fields("choices")))}, nil
}

// Salt reports the chance of at least one success in the given tries.
// Percentages are accepted as "5%" or as a fraction like 0.05.
func (h *BotHandler) Salt(ctx context.Context, req *Request) ([]Response, error) {
	chance, ok := parseChance(req.Args.String("percentage"))
	if !ok {
		return []Response{Text(formatting.MsgSaltPercentage)}, nil
	}

	tries := req.Args.Int("tries")
	if tries < 0 {
		return []Response{Text(formatting.MsgBreakMe)}, nil
	}

	res := math.Round((1-math.Pow(1-chance, float64(tries)))*100*100) / 100
	return []Response{Text(formatting.MsgSalt(strconv.FormatFloat(res, 'f', -1, 64)))}, nil
}

func parseChance(s string) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return v, v >= 0 && v <= 1
}

func (h *BotHandler) Repeat(ctx context.Context, req *Request) ([]Response, error) {
	n := req.Args.Int("times")
	if n > maxRepeats {
		return []Response{Text(formatting.MsgBreakMe)}, nil
	}

	message := req.Args.String("message")
	responses := make([]Response, 0, max(n, 0))
	for range n {
		responses = append(responses, Text(message))
	}
	return responses, nil
}

func (h *BotHandler) Lewd(ctx context.Context, req *Request) ([]Response, error) {
	return []Response{Text(h.pick(h.deps.Assets.Lewd))}, nil
}
