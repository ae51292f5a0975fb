package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"hashhunt/pkg/game/gameplay"
	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

type lineReader func(prompt string) (string, error)

// PromptCharacter asks for an avatar and a name and creates the character
func (t *TUIRenderer) PromptCharacter(g *state.Game) error {
	t.printString("%s\n", i18n.T("CHOOSE_AVATAR"))
	for i, a := range leveling.Avatars {
		t.printString("%s\n", i18n.T("AVATAR_CHOICE", i+1, a.Emoji, a.Title))
	}
	idx, name, err := askCharacter(t.ReadLine)
	if err != nil {
		return err
	}
	gameplay.CreateCharacter(g, name, idx)
	return nil
}

func askCharacter(read lineReader) (int, string, error) {
	choice, err := read(i18n.T("AVATAR_PROMPT"))
	if err != nil {
		return 0, "", err
	}
	name, err := read(i18n.T("NAME_PROMPT"))
	if err != nil {
		return 0, "", err
	}
	return parseAvatarChoice(choice), name, nil
}

// parseAvatarChoice turns a 1-based menu answer into an Avatars index, defaulting to the first
func parseAvatarChoice(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > len(leveling.Avatars) {
		return 0
	}
	return n - 1
}

// PromptParams asks for the inputs of req, offering the defaults in brackets
func (t *TUIRenderer) PromptParams(req state.Request) (gameplay.MissionParams, error) {
	return askParams(t.ReadLine, req, gameplay.DefaultParams())
}

func askParams(read lineReader, req state.Request, p gameplay.MissionParams) (gameplay.MissionParams, error) {
	ask := func(prompt, def string) (string, error) {
		v, err := read(prompt)
		if err != nil {
			return "", err
		}
		return withDefault(v, def), nil
	}
	var err error

	if req.Share {
		platforms := strings.Join(missions.Platforms, "/")
		p.Share.Platform, err = ask(i18n.T("PROMPT_PLATFORM", platforms, p.Share.Platform), p.Share.Platform)
		if err != nil {
			return p, err
		}
		p.Share.Platform = strings.ToLower(p.Share.Platform)
		if !slices.Contains(missions.Platforms, p.Share.Platform) {
			p.Share.Platform = missions.Platforms[0]
		}
		return p, nil
	}

	switch req.Zone.Type {
	case zones.TypeChest:
		return p, nil

	case zones.TypeLimitOrder:
		lo := &p.LimitOrder
		if lo.MakerAsset, err = ask(i18n.T("PROMPT_SRC", lo.MakerAsset), lo.MakerAsset); err != nil {
			return p, err
		}
		if lo.TakerAsset, err = ask(i18n.T("PROMPT_DST", lo.TakerAsset), lo.TakerAsset); err != nil {
			return p, err
		}
		if lo.MakingAmount, err = ask(i18n.T("PROMPT_MAKING", lo.MakingAmount), lo.MakingAmount); err != nil {
			return p, err
		}
		if lo.TakingAmount, err = ask(i18n.T("PROMPT_TAKING", lo.TakingAmount), lo.TakingAmount); err != nil {
			return p, err
		}
		return p, nil
	}

	sp := &p.Swap
	if sp.Src, err = ask(i18n.T("PROMPT_SRC", sp.Src), sp.Src); err != nil {
		return p, err
	}
	if sp.Dst, err = ask(i18n.T("PROMPT_DST", sp.Dst), sp.Dst); err != nil {
		return p, err
	}
	if sp.Amount, err = ask(i18n.T("PROMPT_AMOUNT", sp.Amount), sp.Amount); err != nil {
		return p, err
	}
	slip, err := ask(i18n.T("PROMPT_SLIPPAGE", sp.Slippage), fmt.Sprint(sp.Slippage))
	if err != nil {
		return p, err
	}
	// an unparseable value is passed on as -1 so the mission reports it
	if sp.Slippage, err = strconv.ParseFloat(slip, 64); err != nil {
		sp.Slippage = -1
	}
	return p, nil
}

func withDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
