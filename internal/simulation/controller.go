package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/Dooders/Pyology/internal/catalog"
	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/constants"
	"github.com/Dooders/Pyology/internal/history"
	"github.com/Dooders/Pyology/internal/logging"
	"github.com/Dooders/Pyology/internal/metabolite"
	"github.com/Dooders/Pyology/internal/organelle"
	"github.com/Dooders/Pyology/internal/pathway"
	"github.com/Dooders/Pyology/internal/reaction"
)

// Controller drives the cell through discrete simulation steps. Each step
// feeds glucose, runs the pathways in metabolic order, moves intermediates
// between compartments, applies feedback and ceilings, consults the
// observers, and records a snapshot against the run.
type Controller struct {
	cell    *organelle.Cell
	log     *slog.Logger
	history history.Store
	cfg     config.SimulationConfig
	events  *logging.EventLogger

	glycolysis *pathway.Glycolysis
	krebs      *pathway.KrebsCycle
	etc        *pathway.ElectronTransportChain
	bridge     *reaction.Reaction
	observers  []Observer

	// BeforeStep and AfterStep, when non-nil, run around each step.
	BeforeStep func(step int, cell *organelle.Cell)
	AfterStep  func(step int, cell *organelle.Cell)
}

// RunResult summarizes one simulation run. NetATP combines the glycolytic
// net gain with the synthase output.
type RunResult struct {
	RunID    string
	Status   string
	Steps    int
	NetATP   float64
	Pyruvate float64
	CO2      float64
	Events   []history.Event
}

// NewController wires a controller around the cell. A nil logger discards
// output; a nil history store records to memory. Zero or negative step and
// time settings fall back to the defaults. The adenine baseline is captured
// here, so seed the cell before constructing the controller.
func NewController(cell *organelle.Cell, log *slog.Logger, store history.Store, cfg config.SimulationConfig) (*Controller, error) {
	if cell == nil {
		return nil, fmt.Errorf("cell is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if store == nil {
		store = history.NewMemoryStore()
	}
	if cfg.DurationSteps <= 0 {
		cfg.DurationSteps = constants.DefaultSimulationSteps
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = constants.DefaultTimeStep
	}

	glycolysis := pathway.NewGlycolysis()
	glycolysis.TimeStep = cfg.TimeStep
	glycolysis.Correction = cfg.AdenineCorrection
	krebs := pathway.NewKrebsCycle()
	krebs.TimeStep = cfg.TimeStep

	balance, err := NewAdenineBalanceObserver(cell, cfg.AdenineCorrection)
	if err != nil {
		return nil, fmt.Errorf("failed to capture adenine baseline: %w", err)
	}

	return &Controller{
		cell:       cell,
		log:        log,
		history:    store,
		cfg:        cfg,
		glycolysis: glycolysis,
		krebs:      krebs,
		etc:        pathway.NewElectronTransportChain(),
		bridge:     catalog.PyruvateDehydrogenase(),
		observers:  []Observer{NegativeMetaboliteObserver{}, balance},
	}, nil
}

// SetEventLogger mirrors recorded events into the JSONL event stream. A nil
// logger disables mirroring.
func (c *Controller) SetEventLogger(el *logging.EventLogger) {
	c.events = el
}

// Run executes the configured number of steps, recording the run, its steps,
// and its events in the history store. Context cancellation between steps
// finishes the run record as halted and returns the context error. A halting
// pathway failure finishes the run as halted and returns the result, not an
// error.
func (c *Controller) Run(ctx context.Context) (*RunResult, error) {
	cfgJSON, err := json.Marshal(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run config: %w", err)
	}
	run := history.NewRun(string(cfgJSON))
	if err := c.history.BeginRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	c.log.Info("simulation started",
		"run_id", run.ID,
		"steps", c.cfg.DurationSteps,
		"time_step", c.cfg.TimeStep,
		"glucose_per_step", c.cfg.GlucosePerStep,
	)

	result := &RunResult{RunID: run.ID, Status: history.StatusCompleted}
	for i := 0; i < c.cfg.DurationSteps; i++ {
		if err := ctx.Err(); err != nil {
			result.Status = history.StatusHalted
			if finishErr := c.finish(ctx, run.ID, result); finishErr != nil {
				c.log.Error("failed to finish halted run record", "error", finishErr)
			}
			return nil, err
		}

		if c.BeforeStep != nil {
			c.BeforeStep(i, c.cell)
		}
		halted, err := c.step(ctx, run.ID, i, result)
		if err != nil {
			result.Status = history.StatusHalted
			if finishErr := c.finish(ctx, run.ID, result); finishErr != nil {
				c.log.Error("failed to finish halted run record", "error", finishErr)
			}
			return nil, err
		}
		result.Steps++
		c.cell.SimTime = float64(result.Steps) * c.cfg.TimeStep
		if c.AfterStep != nil {
			c.AfterStep(i, c.cell)
		}
		if halted {
			result.Status = history.StatusHalted
			break
		}
	}

	if err := c.finish(ctx, run.ID, result); err != nil {
		return nil, err
	}
	events, err := c.history.EventsForRun(context.WithoutCancel(ctx), run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read run events: %w", err)
	}
	result.Events = events

	c.log.Info("simulation finished",
		"run_id", run.ID,
		"status", result.Status,
		"steps", result.Steps,
		"net_atp", result.NetATP,
		"pyruvate", result.Pyruvate,
		"co2", result.CO2,
	)
	return result, nil
}

func (c *Controller) finish(ctx context.Context, runID string, result *RunResult) error {
	summary := history.Summary{
		NetATP:        result.NetATP,
		TotalPyruvate: result.Pyruvate,
		TotalCO2:      result.CO2,
		Status:        result.Status,
	}
	if err := c.history.FinishRun(context.WithoutCancel(ctx), runID, summary); err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// step runs one full simulation step. The bool reports whether a pathway
// failure halted the run; the error reports infrastructure failures that
// abort it.
func (c *Controller) step(ctx context.Context, runID string, index int, result *RunResult) (bool, error) {
	c.log.Debug("step started", "step", index)

	halted, err := c.metabolize(ctx, runID, index, result)
	if err != nil {
		return false, err
	}
	if err := c.applyFeedback(); err != nil {
		return false, err
	}
	if err := c.enforceLimits(ctx, runID, index); err != nil {
		return false, err
	}
	if err := c.observe(ctx, runID, index); err != nil {
		return false, err
	}
	if err := c.recordStep(ctx, runID, index); err != nil {
		return false, err
	}
	return halted, nil
}

// metabolize runs the pathway sequence for one step: feed, glycolysis,
// pyruvate import, the dehydrogenase bridge, the Krebs cycle, the NADH
// shuttle, the electron transport chain and synthase, then the adenine
// exchange with the cytoplasm. A pathway error is recorded and either ends
// the sequence early (insufficient substrate) or halts the run.
func (c *Controller) metabolize(ctx context.Context, runID string, index int, result *RunResult) (bool, error) {
	cyto := c.cell.Cytoplasm.Store()
	mito := c.cell.Mitochondrion.Store()

	if err := c.feedGlucose(cyto); err != nil {
		return false, err
	}

	if math.Floor(c.cfg.GlucosePerStep) >= 1 {
		netATP, pyruvate, err := c.glycolysis.Perform(cyto, c.cfg.GlucosePerStep)
		if err != nil {
			return c.recordPathwayError(ctx, runID, index, "glycolysis", err)
		}
		result.NetATP += netATP
		result.Pyruvate += pyruvate
	}

	if _, err := transfer(cyto, mito, constants.SpeciesPyruvate, math.Inf(1)); err != nil {
		return false, err
	}

	converted, err := c.bridge.Execute(mito, c.cfg.TimeStep)
	if err != nil {
		return c.recordPathwayError(ctx, runID, index, "pyruvate_dehydrogenase", err)
	}
	result.CO2 += converted

	c.krebs.SetDehydrogenaseActivity(c.cell.Mitochondrion.DehydrogenaseBoost())
	acetylCoA, err := mito.Quantity(constants.SpeciesAcetylCoA)
	if err != nil {
		return false, err
	}
	if math.Floor(acetylCoA) >= 1 {
		co2, err := c.krebs.Perform(mito, acetylCoA)
		result.CO2 += co2
		if err != nil {
			return c.recordPathwayError(ctx, runID, index, "krebs_cycle", err)
		}
	}

	if err := c.shuttleNADH(cyto, mito); err != nil {
		return false, err
	}

	if err := c.etc.Run(mito); err != nil {
		return c.recordPathwayError(ctx, runID, index, "electron_transport_chain", err)
	}
	synthesized, err := pathway.SynthesizeATP(mito)
	if err != nil {
		return c.recordPathwayError(ctx, runID, index, "atp_synthase", err)
	}
	result.NetATP += synthesized

	if err := c.exchangeAdenine(cyto, mito); err != nil {
		return false, err
	}
	return false, nil
}

// feedGlucose adds the configured glucose to the cytoplasm, clamped to the
// pool's headroom.
func (c *Controller) feedGlucose(cyto *metabolite.Store) error {
	feed := c.cfg.GlucosePerStep
	if feed <= 0 {
		return nil
	}
	glucose, ok := cyto.Get(constants.SpeciesGlucose)
	if !ok {
		return &metabolite.UnknownMetaboliteError{Name: constants.SpeciesGlucose}
	}
	if room := glucose.MaxQuantity() - glucose.Quantity(); feed > room {
		feed = room
	}
	if feed <= 0 {
		return nil
	}
	return cyto.ChangeQuantity(constants.SpeciesGlucose, feed)
}

// shuttleNADH carries cytosolic NADH into the mitochondrion. The shuttle
// oxidizes the full amount on the cytosolic side but delivers only the
// shuttle efficiency's worth of reducing power to the matrix.
func (c *Controller) shuttleNADH(cyto, mito *metabolite.Store) error {
	nadh, err := cyto.Quantity(constants.SpeciesNADH)
	if err != nil {
		return err
	}
	carried := math.Min(constants.ShuttleRate, nadh)
	if carried <= 0 {
		return nil
	}

	if err := cyto.ChangeQuantity(constants.SpeciesNADH, -carried); err != nil {
		return err
	}
	if err := cyto.ChangeQuantity(constants.SpeciesNAD, carried); err != nil {
		return err
	}

	delivered := carried * constants.ShuttleEfficiency
	matrix, ok := mito.Get(constants.SpeciesNADH)
	if !ok {
		return &metabolite.UnknownMetaboliteError{Name: constants.SpeciesNADH}
	}
	if room := matrix.MaxQuantity() - matrix.Quantity(); delivered > room {
		delivered = room
	}
	if delivered <= 0 {
		return nil
	}
	if err := mito.ChangeQuantity(constants.SpeciesNADH, delivered); err != nil {
		return err
	}
	c.log.Debug("nadh shuttled",
		"carried", carried,
		"delivered", delivered,
	)
	return nil
}

// exchangeAdenine keeps the synthase supplied and the matrix drained:
// cytosolic ADP refills the matrix when it runs low, and matrix ATP above
// the mitochondrial ceiling is exported to the cytoplasm.
func (c *Controller) exchangeAdenine(cyto, mito *metabolite.Store) error {
	adp, err := mito.Quantity(constants.SpeciesADP)
	if err != nil {
		return err
	}
	if adp < constants.LowADPThreshold {
		moved, err := transfer(cyto, mito, constants.SpeciesADP, constants.ADPRefillAmount)
		if err != nil {
			return err
		}
		if moved > 0 {
			c.log.Debug("mitochondrial adp refilled", "moved", moved)
		}
	}

	atp, err := mito.Quantity(constants.SpeciesATP)
	if err != nil {
		return err
	}
	surplus := atp - constants.MaxMitochondrialATP
	if surplus <= 0 {
		return nil
	}
	cytoATP, err := cyto.Quantity(constants.SpeciesATP)
	if err != nil {
		return err
	}
	export := math.Min(surplus, constants.MaxCytoplasmicATP-cytoATP)
	if export <= 0 {
		return nil
	}
	moved, err := transfer(mito, cyto, constants.SpeciesATP, export)
	if err != nil {
		return err
	}
	if moved > 0 {
		c.log.Debug("mitochondrial atp exported", "moved", moved)
	}
	return nil
}

// applyFeedback scales phosphofructokinase activity with cytosolic ADP, so
// energy demand pulls glycolysis forward on the next step.
func (c *Controller) applyFeedback() error {
	adp, err := c.cell.Cytoplasm.Store().Quantity(constants.SpeciesADP)
	if err != nil {
		return err
	}
	c.glycolysis.SetPhosphofructokinaseActivity(1 + adp/constants.ADPActivationScale)
	return nil
}

// enforceLimits clamps the per-compartment energy carrier ceilings and the
// global metabolite ceiling, recording a limit event for each clamp.
func (c *Controller) enforceLimits(ctx context.Context, runID string, index int) error {
	cyto := c.cell.Cytoplasm.Store()
	mito := c.cell.Mitochondrion.Store()

	ceilings := []struct {
		compartment constants.Compartment
		store       *metabolite.Store
		species     string
		limit       float64
	}{
		{constants.CompartmentMitochondrion, mito, constants.SpeciesATP, constants.MaxMitochondrialATP},
		{constants.CompartmentMitochondrion, mito, constants.SpeciesNADH, constants.MaxMitochondrialNADH},
		{constants.CompartmentCytoplasm, cyto, constants.SpeciesATP, constants.MaxCytoplasmicATP},
		{constants.CompartmentCytoplasm, cyto, constants.SpeciesNADH, constants.MaxCytoplasmicNADH},
	}
	for _, ceiling := range ceilings {
		if err := c.clamp(ctx, runID, index, ceiling.compartment, ceiling.store, ceiling.species, ceiling.limit); err != nil {
			return err
		}
	}

	compartments := []struct {
		name  constants.Compartment
		store *metabolite.Store
	}{
		{constants.CompartmentCytoplasm, cyto},
		{constants.CompartmentMitochondrion, mito},
	}
	for _, compartment := range compartments {
		for _, species := range compartment.store.Names() {
			if err := c.clamp(ctx, runID, index, compartment.name, compartment.store, species, constants.MaxMetabolite); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller) clamp(ctx context.Context, runID string, index int, compartment constants.Compartment, store *metabolite.Store, species string, limit float64) error {
	quantity, err := store.Quantity(species)
	if err != nil {
		return err
	}
	if quantity <= limit {
		return nil
	}
	excess := quantity - limit
	if err := store.SetQuantity(species, limit); err != nil {
		return err
	}
	c.log.Warn("metabolite ceiling enforced",
		"compartment", compartment.String(),
		"species", species,
		"limit", limit,
		"excess", excess,
	)
	return c.recordEvent(ctx, runID, history.Event{
		Step:    index,
		Kind:    history.EventLimitEnforced,
		Message: fmt.Sprintf("%s %s clamped to %g", compartment, species, limit),
	}, map[string]any{
		"compartment": compartment.String(),
		"species":     species,
		"limit":       limit,
		"excess":      excess,
	})
}

// observe runs every observer, turning findings into run events. An
// observer error halts the run.
func (c *Controller) observe(ctx context.Context, runID string, index int) error {
	for _, obs := range c.observers {
		findings, err := obs.Observe(c.cell)
		if err != nil {
			return fmt.Errorf("observer %s: %w", obs.Name(), err)
		}
		for _, finding := range findings {
			c.log.Warn(finding.Message, "observer", obs.Name(), "kind", finding.Kind)
			if err := c.recordEvent(ctx, runID, history.Event{
				Step:    index,
				Kind:    finding.Kind,
				Message: finding.Message,
			}, finding.Details); err != nil {
				return err
			}
		}
	}
	return nil
}

// recordEvent appends the event to the run history and mirrors it into the
// JSONL event stream.
func (c *Controller) recordEvent(ctx context.Context, runID string, event history.Event, details map[string]any) error {
	event.RunID = runID
	if len(details) > 0 {
		encoded, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to encode event details: %w", err)
		}
		event.DetailsJSON = string(encoded)
	}
	if err := c.history.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Kind, err)
	}

	mirror := map[string]any{
		"kind":    event.Kind,
		"step":    event.Step,
		"message": event.Message,
	}
	for k, v := range details {
		mirror[k] = v
	}
	c.events.Log(mirror)
	return nil
}

// recordPathwayError records the failure as a run event, then decides the
// step's fate: insufficient substrate is survivable and just ends this
// step's pathway sequence, anything else halts the run.
func (c *Controller) recordPathwayError(ctx context.Context, runID string, index int, stage string, pathErr error) (bool, error) {
	if err := c.recordEvent(ctx, runID, history.Event{
		Step:    index,
		Kind:    history.EventPathwayError,
		Message: pathErr.Error(),
	}, map[string]any{"stage": stage}); err != nil {
		return false, err
	}

	var insufficient *metabolite.InsufficientMetaboliteError
	if errors.As(pathErr, &insufficient) {
		c.log.Warn("pathway short on substrate, continuing",
			"stage", stage,
			"species", insufficient.Name,
			"error", pathErr,
		)
		return false, nil
	}
	c.log.Error("pathway failed, halting run", "stage", stage, "error", pathErr)
	return true, nil
}

// recordStep appends the per-compartment quantity snapshot for this step.
func (c *Controller) recordStep(ctx context.Context, runID string, index int) error {
	quantities := map[string]map[string]float64{
		"cytoplasm":     c.cell.Cytoplasm.Store().Quantities(),
		"mitochondrion": c.cell.Mitochondrion.Store().Quantities(),
	}
	encoded, err := json.Marshal(quantities)
	if err != nil {
		return fmt.Errorf("failed to encode step snapshot: %w", err)
	}
	step := history.Step{
		RunID:          runID,
		Index:          index,
		SimTime:        float64(index+1) * c.cfg.TimeStep,
		QuantitiesJSON: string(encoded),
	}
	if err := c.history.AppendStep(ctx, step); err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}
	c.log.Log(ctx, logging.LevelTrace, "step state",
		"step", index,
		"cytoplasm", quantities["cytoplasm"],
		"mitochondrion", quantities["mitochondrion"],
	)
	return nil
}

// transfer moves a species between compartments. The limit caps the amount;
// the source quantity and the destination headroom bound it further. The
// moved amount is returned.
func transfer(from, to *metabolite.Store, species string, limit float64) (float64, error) {
	available, err := from.Quantity(species)
	if err != nil {
		return 0, err
	}
	destination, ok := to.Get(species)
	if !ok {
		return 0, &metabolite.UnknownMetaboliteError{Name: species}
	}
	moved := math.Min(limit, available)
	if room := destination.MaxQuantity() - destination.Quantity(); moved > room {
		moved = room
	}
	if moved <= 0 {
		return 0, nil
	}
	if err := from.ChangeQuantity(species, -moved); err != nil {
		return 0, err
	}
	if err := to.ChangeQuantity(species, moved); err != nil {
		return 0, err
	}
	return moved, nil
}
