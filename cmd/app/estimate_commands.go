package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/newtonic3d/estimatevault/cmd/app/commands"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	estimateService "github.com/newtonic3d/estimatevault/internal/estimate/service"
)

func getEstimateCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "calculate-estimate",
			Usage: "Run the cost model locally without storing anything",
			Flags: []cli.Flag{
				&cli.FloatFlag{
					Name:     "file-size-mb",
					Required: true,
					Usage:    "Model file size in MB",
				},
				&cli.IntFlag{
					Name:  "quantity",
					Value: 1,
					Usage: "Number of copies",
				},
				&cli.FloatFlag{
					Name:  "density",
					Usage: "Material density in g/cm3 (0 uses the default)",
				},
				&cli.FloatFlag{
					Name:  "price-per-gram",
					Usage: "Material price per gram",
				},
				&cli.StringFlag{
					Name:  "quality",
					Value: estimateDomain.QualityStandard,
					Usage: "Print quality: draft, standard, fine or ultrafine",
				},
				&cli.StringFlag{
					Name:  "urgency",
					Value: estimateDomain.UrgencyStandard,
					Usage: "Urgency: standard, express or urgent",
				},
				&cli.FloatFlag{
					Name:  "color-surcharge",
					Usage: "Color surcharge in percent",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCalculateEstimate(
					estimateService.NewCalculator(),
					commands.DefaultIO().Writer,
					estimateDomain.CalculationInput{
						FileSizeMB:     cmd.Float("file-size-mb"),
						Quantity:       int(cmd.Int("quantity")),
						Density:        cmd.Float("density"),
						PricePerGram:   cmd.Float("price-per-gram"),
						Quality:        cmd.String("quality"),
						Urgency:        cmd.String("urgency"),
						ColorSurcharge: cmd.Float("color-surcharge"),
					},
					cmd.String("format"),
				)
			},
		},
	}
}
