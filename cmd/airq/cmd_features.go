package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/feature"
)

var featuresFlags struct {
	json bool
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the model inputs with their defaults and slider bounds",
	Args:  cobra.NoArgs,
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().BoolVar(&featuresFlags.json, "json", false, "Print JSON")
}

type featureInfo struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
}

func runFeatures(cmd *cobra.Command, _ []string) error {
	reg := feature.Default()
	slider := collector.NewSlider(reg)

	var infos []featureInfo
	for _, f := range reg.Features() {
		b := slider.Bounds(f)
		infos = append(infos, featureInfo{Name: f.Name, Default: f.Default, Min: b.Min, Max: b.Max, Step: b.Step})
	}

	out := cmd.OutOrStdout()
	if featuresFlags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDEFAULT\tMIN\tMAX")
	for _, fi := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", fi.Name,
			feature.FormatValue(fi.Default), feature.FormatValue(fi.Min), feature.FormatValue(fi.Max))
	}
	return tw.Flush()
}
