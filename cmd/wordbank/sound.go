// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wordbank/internal/sound"
)

var soundCmd = &cobra.Command{
	Use:   "sound WORD...",
	Short: "Show the starting sound group of words",
	Long: `Sound prints the starting sound group of each word, the key the
distractor rules compare, along with its phonetic form. With more than one
word it also groups the words by sound.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSound,
}

func init() {
	soundCmd.Flags().String("language", sound.DefaultLanguage, "sound table: "+strings.Join(sound.Languages(), ", "))
	soundCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(soundCmd)
}

type soundOutput struct {
	Word     string `json:"word"`
	Group    string `json:"group"`
	Phonetic string `json:"phonetic"`
	Key      string `json:"key"`
}

func runSound(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("language")
	asJSON, _ := cmd.Flags().GetBool("json")
	d := sound.New(lang)

	out := make([]soundOutput, 0, len(args))
	for _, w := range args {
		out = append(out, soundOutput{Word: w, Group: d.Group(w), Phonetic: d.Phonetic(w), Key: d.Key(w)})
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	for _, o := range out {
		fmt.Fprintf(w, "%-16s %-4s /%s/  %s\n", o.Word, o.Group, o.Phonetic, o.Key)
	}
	if len(args) < 2 {
		return nil
	}

	groups := d.GroupWords(args)
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)
	fmt.Fprintln(w)
	for _, g := range names {
		fmt.Fprintf(w, "%s: %s\n", g, strings.Join(groups[g], ", "))
	}
	return nil
}
