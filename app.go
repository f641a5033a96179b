package main

import (
	"bytes"
	"context"
	"log"
	"sync"

	"github.com/chazu/amphora/pkg/export"
	"github.com/chazu/amphora/pkg/measure"
	"github.com/chazu/amphora/pkg/preview"
	"github.com/chazu/amphora/pkg/recipe"
	"github.com/chazu/amphora/pkg/solid"
	"github.com/chazu/amphora/pkg/studio"
	"github.com/chazu/amphora/pkg/vessel"
)

// defaultVesselColor tints the shaded vessel in the viewport.
const defaultVesselColor = "#B5764A"

// App is the Wails backend. It exposes methods to the frontend via bindings.
// The mutex serializes binding calls so the studio always sees a single
// driver, matching its one-goroutine contract.
type App struct {
	ctx    context.Context
	mu     sync.Mutex
	studio *studio.Studio
	engine *recipe.Engine
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// DiagnosticData is a JSON-serializable design finding for the frontend.
type DiagnosticData struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// EvalErrorData is a JSON-serializable recipe error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// FrameResult is what one render tick returns. Mesh and Section are only
// populated on frames that rebuilt them; the frontend keeps its last copy
// otherwise.
type FrameResult struct {
	Changed     bool             `json:"changed"`
	Mesh        *MeshData        `json:"mesh,omitempty"`
	Section     []float32        `json:"section"`
	Metrics     measure.Metrics  `json:"metrics"`
	Diagnostics []DiagnosticData `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// ParameterState is the clamped parameter record plus the derived control
// ranges the frontend needs to configure its sliders.
type ParameterState struct {
	vessel.Parameters
	SectionLimit float64 `json:"sectionLimit"`
}

// UpdateResult reports the value actually in effect after one slider edit.
type UpdateResult struct {
	Applied float64 `json:"applied"`
	Error   string  `json:"error,omitempty"`
}

// RecipeResult is the outcome of evaluating recipe source.
type RecipeResult struct {
	Applied *ParameterState `json:"applied,omitempty"`
	Errors  []EvalErrorData `json:"errors"`
}

// ExportResult carries an encoded artifact to the frontend. Data arrives as
// base64 in JSON; the frontend turns it into a download.
type ExportResult struct {
	FileName string `json:"fileName"`
	Data     []byte `json:"data"`
	Error    string `json:"error,omitempty"`
}

// NewApp creates a new App with a dirty studio and a recipe engine. The
// first Frame call builds the default vessel.
func NewApp() *App {
	return &App{
		studio: studio.New(),
		engine: recipe.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Frame runs one tick of the regeneration loop. The frontend calls this from
// its requestAnimationFrame callback; rebuilds happen here and nowhere else.
func (a *App) Frame() FrameResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := FrameResult{
		Section:     []float32{},
		Diagnostics: []DiagnosticData{},
	}

	res, err := a.studio.Frame()
	if err != nil {
		// The previous mesh stays on display; surface the failure once.
		log.Printf("Frame rebuild error: %v", err)
		result.Error = err.Error()
	}
	result.Changed = res.Changed
	result.Metrics = res.Metrics

	if res.Changed && res.Mesh != nil {
		result.Mesh = &MeshData{
			Vertices: res.Mesh.Vertices,
			Normals:  res.Mesh.Normals,
			Indices:  res.Mesh.Indices,
			Name:     res.Mesh.Name,
			Color:    defaultVesselColor,
		}
		if flat := res.Section.Flatten(); flat != nil {
			result.Section = flat
		}
	}

	for _, d := range a.studio.Diagnostics() {
		result.Diagnostics = append(result.Diagnostics, DiagnosticData{
			Field:    d.Field,
			Message:  d.Message,
			Severity: d.Severity.String(),
		})
	}

	return result
}

// UpdateParameter applies one named field edit and returns the clamped value
// actually in effect, so the control can snap its thumb to reality. The
// rebuild itself waits for the next Frame.
func (a *App) UpdateParameter(name string, value float64) UpdateResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	applied, err := a.studio.Set(name, value)
	if err != nil {
		log.Printf("UpdateParameter error: %v", err)
		return UpdateResult{Error: err.Error()}
	}
	return UpdateResult{Applied: applied}
}

// SetSectionEnabled toggles the cutting plane. Re-sending the current state
// is a no-op and does not schedule a rebuild.
func (a *App) SetSectionEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.studio.SetSectionEnabled(enabled)
}

// Parameters returns the current clamped record and derived control ranges.
func (a *App) Parameters() ParameterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.parameterState()
}

// Metrics returns the readout values from the last rebuild.
func (a *App) Metrics() measure.Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.studio.Metrics()
}

// ApplyRecipe evaluates recipe source and, when it is clean, replaces the
// studio parameters with the record it describes.
func (a *App) ApplyRecipe(source string) RecipeResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := RecipeResult{Errors: []EvalErrorData{}}

	params, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("ApplyRecipe fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.studio.SetParameters(params)
	state := a.parameterState()
	result.Applied = &state
	return result
}

// ExportSTL encodes the current display mesh as STL, binary by default.
func (a *App) ExportSTL(ascii bool) ExportResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	var buf bytes.Buffer
	var err error
	if ascii {
		err = export.WriteSTLASCII(a.studio.Mesh(), &buf)
	} else {
		err = export.WriteSTL(a.studio.Mesh(), &buf)
	}
	if err != nil {
		log.Printf("ExportSTL error: %v", err)
		return ExportResult{Error: err.Error()}
	}
	return ExportResult{FileName: "vessel.stl", Data: buf.Bytes()}
}

// ExportOBJ encodes the current display mesh as Wavefront OBJ.
func (a *App) ExportOBJ() ExportResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	var buf bytes.Buffer
	if err := export.WriteOBJ(a.studio.Mesh(), &buf); err != nil {
		log.Printf("ExportOBJ error: %v", err)
		return ExportResult{Error: err.Error()}
	}
	return ExportResult{FileName: "vessel.obj", Data: buf.Bytes()}
}

// ExportSolidSTL rebuilds the vessel as a watertight implicit solid, meshes
// it at the given grid resolution, and encodes it as binary STL. Slower than
// ExportSTL but manifold, for slicers that reject open shells.
func (a *App) ExportSolidSTL(cells int) ExportResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := solid.From(a.studio.Parameters())
	if err != nil {
		log.Printf("ExportSolidSTL build error: %v", err)
		return ExportResult{Error: err.Error()}
	}
	m := solid.ToMesh(s, cells)

	var buf bytes.Buffer
	if err := export.WriteSTL(m, &buf); err != nil {
		log.Printf("ExportSolidSTL encode error: %v", err)
		return ExportResult{Error: err.Error()}
	}
	return ExportResult{FileName: "vessel-solid.stl", Data: buf.Bytes()}
}

// SnapshotPNG renders the current mesh with the fixed studio camera.
func (a *App) SnapshotPNG(width, height int) ExportResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := preview.Render(a.studio.Mesh(), width, height)
	if err != nil {
		log.Printf("SnapshotPNG error: %v", err)
		return ExportResult{Error: err.Error()}
	}
	return ExportResult{FileName: "vessel.png", Data: data}
}

func (a *App) parameterState() ParameterState {
	p := a.studio.Parameters()
	return ParameterState{Parameters: p, SectionLimit: p.SectionLimit()}
}
