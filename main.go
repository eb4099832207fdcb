package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	batch "Eletta/internal/calc/batch"
	correction "Eletta/internal/calc/correction"
	fluid "Eletta/internal/calc/fluid"
	orifice "Eletta/internal/calc/orifice"
	importer "Eletta/internal/importer"
	report "Eletta/internal/report"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional for a CLI tool; environment variables win either way.
	_ = godotenv.Load()

	if lvl := os.Getenv("GL40_LOG_LEVEL"); lvl != "" {
		if parsed, err := log.ParseLevel(lvl); err == nil {
			log.SetLevel(parsed)
		}
	}

	defaultTargetDP := orifice.DefaultTargetDPmbar
	if v := os.Getenv("GL40_TARGET_DP"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			defaultTargetDP = parsed
		}
	}

	oil := flag.String("oil", "", "oil type: VG220 or VG320")
	temp := flag.Float64("temp", 0, "operating temperature in °C")
	flow := flag.Float64("flow", 0, "target flow rate in L/min (single point mode)")
	flowMin := flag.Float64("flow-min", 0, "minimum flow for calibration table (L/min)")
	flowMax := flag.Float64("flow-max", 0, "maximum flow for calibration table (L/min)")
	steps := flag.Int("steps", 10, "number of rows in the calibration table")
	propsOnly := flag.Bool("props-only", false, "show fluid properties only")
	correct := flag.Bool("correct", false, "calculate corrected orifice diameter")
	trueFlow := flag.Float64("true-flow", 0, "actual flow rate in L/min (correction mode)")
	sensorReading := flag.Float64("sensor-reading", 0, "current sensor reading in L/min (correction mode)")
	currentOrifice := flag.Float64("current-orifice", 0, "current orifice diameter in mm (correction mode)")
	batchPath := flag.String("batch", "", "xlsx workbook with sizing points (grade, temp_c, flow_lpm[, target_dp_mbar])")
	targetDP := flag.Float64("target-dp", defaultTargetDP, "target differential pressure in mbar")
	pdfPath := flag.String("pdf", "", "also write a PDF report to this path")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	modes := 0
	if set["flow"] {
		modes++
	}
	if set["flow-min"] || set["flow-max"] {
		modes++
	}
	if *propsOnly {
		modes++
	}
	if *correct {
		modes++
	}
	if *batchPath != "" {
		modes++
	}
	if modes != 1 {
		log.Fatal("specify exactly one mode: -flow, -flow-min/-flow-max, -props-only, -correct or -batch")
	}

	if *batchPath != "" {
		if err := batchMode(*batchPath, *pdfPath); err != nil {
			log.Fatalf("batch calculation failed: %v", err)
		}
		return
	}

	if !set["oil"] || !set["temp"] {
		log.Fatal("-oil and -temp are required")
	}
	grade, err := fluid.ParseGrade(*oil)
	if err != nil {
		log.Fatalf("invalid -oil: %v", err)
	}

	switch {
	case *propsOnly:
		err = propsMode(grade, *temp, *pdfPath)
	case set["flow"]:
		err = singlePointMode(grade, *temp, *flow, *targetDP, *pdfPath)
	case set["flow-min"] || set["flow-max"]:
		if !set["flow-min"] || !set["flow-max"] {
			log.Fatal("-flow-min and -flow-max must be given together")
		}
		if *steps < 2 {
			log.Fatal("-steps must be at least 2")
		}
		err = tableMode(grade, *temp, *flowMin, *flowMax, *steps, *targetDP, *pdfPath)
	case *correct:
		if !set["true-flow"] || !set["sensor-reading"] || !set["current-orifice"] {
			log.Fatal("-correct requires -true-flow, -sensor-reading and -current-orifice")
		}
		err = correctionMode(grade, *temp, *trueFlow, *sensorReading, *currentOrifice, *pdfPath)
	}
	if err != nil {
		log.Fatalf("calculation failed: %v", err)
	}
}

func printHeader() {
	fmt.Println(strings.Repeat("═", 55))
	fmt.Println("  ELETTA S2 GL40 CALIBRATION RESULTS")
	fmt.Println(strings.Repeat("═", 55))
	fmt.Println()
}

func printSeparator() {
	fmt.Println(strings.Repeat("─", 55))
}

func printFooter() {
	fmt.Println(strings.Repeat("═", 55))
}

type fluidProps struct {
	kinematicCSt float64
	dynamicPaS   float64
	densityKgM3  float64
	lcf          float64
}

func loadFluidProps(g fluid.Grade, tempC float64) (fluidProps, error) {
	nu, err := fluid.Viscosity(g, tempC)
	if err != nil {
		return fluidProps{}, err
	}
	mu, err := fluid.DynamicViscosity(g, tempC)
	if err != nil {
		return fluidProps{}, err
	}
	rho, err := fluid.Density(g, tempC)
	if err != nil {
		return fluidProps{}, err
	}
	lcf, err := fluid.CorrectionFactor(g, tempC)
	if err != nil {
		return fluidProps{}, err
	}
	return fluidProps{kinematicCSt: nu, dynamicPaS: mu, densityKgM3: rho, lcf: lcf}, nil
}

func printFluidProps(tempC float64, props fluidProps) {
	fmt.Printf("Fluid Properties @ %g°C:\n", tempC)
	fmt.Printf("  Kinematic Viscosity:  %.1f cSt\n", props.kinematicCSt)
	fmt.Printf("  Dynamic Viscosity:    %.1f mPa·s\n", props.dynamicPaS*1000)
	fmt.Printf("  Density:              %.0f kg/m³\n", props.densityKgM3)
	fmt.Println()
}

func propsMode(g fluid.Grade, tempC float64, pdfPath string) error {
	props, err := loadFluidProps(g, tempC)
	if err != nil {
		return err
	}

	printHeader()
	fmt.Println("Input Parameters:")
	fmt.Printf("  Oil Type:        %s\n", g)
	fmt.Printf("  Temperature:     %g °C\n", tempC)
	fmt.Println()
	printFluidProps(tempC, props)
	fmt.Printf("Correction Factor:    %.3f\n", props.lcf)
	fmt.Println()
	printFooter()

	if pdfPath != "" {
		return writePDF(pdfPath, g, tempC, props, nil, nil)
	}
	return nil
}

func singlePointMode(g fluid.Grade, tempC, flowLPM, targetDP float64, pdfPath string) error {
	props, err := loadFluidProps(g, tempC)
	if err != nil {
		return err
	}
	point, warnings, err := sizePoint(g, tempC, flowLPM, targetDP)
	if err != nil {
		return err
	}

	printHeader()
	fmt.Println("Input Parameters:")
	fmt.Printf("  Oil Type:        %s\n", g)
	fmt.Printf("  Temperature:     %g °C\n", tempC)
	fmt.Printf("  Target Flow:     %g L/min\n", flowLPM)
	fmt.Println()
	printFluidProps(tempC, props)

	fmt.Println("Calculated Results:")
	fmt.Printf("  Orifice Diameter:     %.1f mm\n", point.DiameterMM)
	fmt.Printf("  Beta Ratio:           %.3f\n", point.Beta)
	fmt.Printf("  Correction Factor:    %.3f\n", props.lcf)
	fmt.Printf("  Reynolds Number:      %.0f\n", point.Reynolds)
	fmt.Printf("  Differential Pressure: %.0f mbar\n", point.DPmbar)
	fmt.Println()

	printWarnings(warnings)
	printFooter()

	if pdfPath != "" {
		return writePDF(pdfPath, g, tempC, props, []report.Point{point}, warnings)
	}
	return nil
}

func tableMode(g fluid.Grade, tempC, flowMin, flowMax float64, steps int, targetDP float64, pdfPath string) error {
	props, err := loadFluidProps(g, tempC)
	if err != nil {
		return err
	}

	printHeader()
	fmt.Println("Input Parameters:")
	fmt.Printf("  Oil Type:        %s\n", g)
	fmt.Printf("  Temperature:     %g °C\n", tempC)
	fmt.Printf("  Flow Range:      %g-%g L/min\n", flowMin, flowMax)
	fmt.Println()
	printFluidProps(tempC, props)

	fmt.Println("Calibration Table:")
	fmt.Println()
	fmt.Printf("%8s  %8s  %6s  %10s  %6s  %6s\n", "Flow", "Orifice", "Beta", "Reynolds", "ΔP", "Status")
	fmt.Printf("%8s  %8s  %6s  %10s  %6s  %6s\n", "(L/min)", "(mm)", "(-)", "(-)", "(mbar)", "")
	printSeparator()

	var points []report.Point
	flowStep := (flowMax - flowMin) / float64(steps-1)
	for i := 0; i < steps; i++ {
		flowLPM := flowMin + float64(i)*flowStep
		point, warnings, err := sizePoint(g, tempC, flowLPM, targetDP)
		if err != nil {
			return err
		}
		status := "✓"
		if len(warnings) > 0 {
			status = "⚠"
		}
		fmt.Printf("%8.1f  %8.1f  %6.3f  %10.0f  %6.0f  %6s\n",
			flowLPM, point.DiameterMM, point.Beta, point.Reynolds, point.DPmbar, status)
		points = append(points, point)
	}

	fmt.Println()
	printFooter()

	if pdfPath != "" {
		return writePDF(pdfPath, g, tempC, props, points, nil)
	}
	return nil
}

func correctionMode(g fluid.Grade, tempC, trueFlow, sensorReading, currentOrifice float64, pdfPath string) error {
	props, err := loadFluidProps(g, tempC)
	if err != nil {
		return err
	}
	result, err := correction.Calculate(correction.Input{
		Grade:            g,
		TempC:            tempC,
		TrueFlowLPM:      trueFlow,
		SensorReadingLPM: sensorReading,
		CurrentOrificeMM: currentOrifice,
	})
	if err != nil {
		return err
	}

	printHeader()
	fmt.Println("Input Parameters:")
	fmt.Printf("  Oil Type:        %s\n", g)
	fmt.Printf("  Temperature:     %g °C\n", tempC)
	fmt.Printf("  True Flow:       %g L/min\n", trueFlow)
	fmt.Printf("  Sensor Reading:  %g L/min\n", sensorReading)
	fmt.Printf("  Current Orifice: %g mm\n", currentOrifice)
	fmt.Println()
	printFluidProps(tempC, props)

	fmt.Println("Current Situation:")
	if result.ErrorPercent > 0 {
		fmt.Printf("  Sensor reads %.1f%% HIGH\n", math.Abs(result.ErrorPercent))
	} else {
		fmt.Printf("  Sensor reads %.1f%% LOW\n", math.Abs(result.ErrorPercent))
	}
	fmt.Printf("  Current Orifice:      %.1f mm\n", result.CurrentOrificeMM)
	fmt.Printf("  Current Beta Ratio:   %.3f\n", result.CurrentBeta)
	fmt.Printf("  Current ΔP:           %.0f mbar\n", result.CurrentDPmbar)
	fmt.Printf("  Current Reynolds:     %.0f\n", result.CurrentReynolds)
	fmt.Println()

	fmt.Println("Recommended Correction:")
	fmt.Printf("  Corrected Orifice:    %.1f mm\n", result.CorrectedOrificeMM)
	fmt.Printf("  Corrected Beta Ratio: %.3f\n", result.CorrectedBeta)
	fmt.Printf("  Corrected ΔP:         %.0f mbar\n", result.CorrectedDPmbar)
	fmt.Printf("  Corrected Reynolds:   %.0f\n", result.CorrectedReynolds)
	fmt.Println()

	sizeChange := (result.CorrectedOrificeMM - result.CurrentOrificeMM) / result.CurrentOrificeMM * 100.0
	switch {
	case sizeChange > 0.5:
		fmt.Printf("Action: Replace orifice with one %.1f%% LARGER (%.1f mm)\n", sizeChange, result.CorrectedOrificeMM)
	case sizeChange < -0.5:
		fmt.Printf("Action: Replace orifice with one %.1f%% SMALLER (%.1f mm)\n", -sizeChange, result.CorrectedOrificeMM)
	default:
		fmt.Println("Action: Current orifice size is acceptable (< 0.5% change needed)")
	}
	fmt.Println()

	warnings, err := orifice.ValidateOperatingConditions(trueFlow, result.CorrectedOrificeMM, g, tempC)
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		fmt.Println("⚠ Warnings with corrected orifice:")
		for _, warning := range warnings {
			fmt.Printf("  - %s\n", warning)
		}
		fmt.Println()
	}
	printFooter()

	if pdfPath != "" {
		points := []report.Point{
			{FlowLPM: trueFlow, DiameterMM: result.CurrentOrificeMM, Beta: result.CurrentBeta,
				Reynolds: result.CurrentReynolds, DPmbar: result.CurrentDPmbar, OK: false},
			{FlowLPM: trueFlow, DiameterMM: result.CorrectedOrificeMM, Beta: result.CorrectedBeta,
				Reynolds: result.CorrectedReynolds, DPmbar: result.CorrectedDPmbar, OK: len(warnings) == 0},
		}
		return writePDF(pdfPath, g, tempC, props, points, warnings)
	}
	return nil
}

func batchMode(path, pdfPath string) error {
	if pdfPath != "" {
		log.Warn("PDF export is not supported in batch mode")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	points, err := importer.ReadSizingPoints(f)
	if err != nil {
		return err
	}
	results, err := batch.CalculateSizing(batch.SizingBatchInput{Items: points})
	if err != nil {
		return err
	}

	printHeader()
	fmt.Printf("Batch Sizing: %d points from %s\n", len(points), path)
	fmt.Println()
	fmt.Printf("%6s  %6s  %8s  %8s  %6s  %10s  %6s  %6s\n",
		"Oil", "Temp", "Flow", "Orifice", "Beta", "Reynolds", "ΔP", "Status")
	printSeparator()

	for i, in := range points {
		res := results.Results[i]
		reynolds, err := orifice.ReynoldsNumber(in.FlowLPM, res.DiameterMM, in.Grade, in.TempC)
		if err != nil {
			return err
		}
		dp, err := orifice.DifferentialPressure(in.FlowLPM, res.DiameterMM, in.Grade, in.TempC)
		if err != nil {
			return err
		}
		warnings, err := orifice.ValidateOperatingConditions(in.FlowLPM, res.DiameterMM, in.Grade, in.TempC)
		if err != nil {
			return err
		}
		status := "✓"
		if len(warnings) > 0 {
			status = "⚠"
		}
		fmt.Printf("%6s  %6.1f  %8.1f  %8.1f  %6.3f  %10.0f  %6.0f  %6s\n",
			in.Grade, in.TempC, in.FlowLPM, res.DiameterMM, res.BetaRatio, reynolds, dp, status)
	}

	fmt.Println()
	printFooter()
	return nil
}

// sizePoint runs the solver plus the reporting diagnostics for one flow.
func sizePoint(g fluid.Grade, tempC, flowLPM, targetDP float64) (report.Point, []string, error) {
	res, err := orifice.Size(orifice.Input{Grade: g, TempC: tempC, FlowLPM: flowLPM, TargetDPmbar: targetDP})
	if err != nil {
		return report.Point{}, nil, err
	}
	reynolds, err := orifice.ReynoldsNumber(flowLPM, res.DiameterMM, g, tempC)
	if err != nil {
		return report.Point{}, nil, err
	}
	dp, err := orifice.DifferentialPressure(flowLPM, res.DiameterMM, g, tempC)
	if err != nil {
		return report.Point{}, nil, err
	}
	warnings, err := orifice.ValidateOperatingConditions(flowLPM, res.DiameterMM, g, tempC)
	if err != nil {
		return report.Point{}, nil, err
	}
	return report.Point{
		FlowLPM:    flowLPM,
		DiameterMM: res.DiameterMM,
		Beta:       res.BetaRatio,
		Reynolds:   reynolds,
		DPmbar:     dp,
		OK:         len(warnings) == 0,
	}, warnings, nil
}

func printWarnings(warnings []string) {
	if len(warnings) > 0 {
		fmt.Println("⚠ Warnings:")
		for _, warning := range warnings {
			fmt.Printf("  - %s\n", warning)
		}
		fmt.Println()
		fmt.Println("Status: ⚠ Some parameters outside recommended range")
	} else {
		fmt.Println("Status: ✓ All parameters within valid range")
	}
}

func writePDF(path string, g fluid.Grade, tempC float64, props fluidProps, points []report.Point, warnings []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rep := report.Report{
		Grade:            g,
		TempC:            tempC,
		KinematicCSt:     props.kinematicCSt,
		DynamicPaS:       props.dynamicPaS,
		DensityKgM3:      props.densityKgM3,
		CorrectionFactor: props.lcf,
		Points:           points,
		Warnings:         warnings,
	}
	if err := report.Generate(f, rep); err != nil {
		return err
	}
	log.WithField("path", path).Info("PDF report written")
	return nil
}
