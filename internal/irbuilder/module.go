package irbuilder

import (
	"strings"

	"github.com/tsoniclang/tsonic/internal/binding"
	"github.com/tsoniclang/tsonic/internal/diagnostics"
	"github.com/tsoniclang/tsonic/internal/ir"
	"github.com/tsoniclang/tsonic/internal/surface"
	"github.com/tsoniclang/tsonic/internal/typesystem"
)

// BuildModule implements spec.md §4.4: for each source file, import
// extraction and classification, statement extraction, static-container
// detection, and namespace/container synthesis from the file path.
func BuildModule(b *binding.Binding, types *typesystem.System, sink *diagnostics.Sink, prog *surface.Program) *ir.Module {
	ctx := newProgramContext(b, types, sink, prog.File)

	imports := make([]ir.Import, len(prog.Imports))
	for i, imp := range prog.Imports {
		imports[i] = classifyImport(ctx, imp)
	}

	stmts := make([]ir.Statement, 0, len(prog.Decls))
	for _, d := range prog.Decls {
		stmts = append(stmts, convertTopDecl(ctx, d)...)
	}

	namespace, container := namespaceAndContainer(prog.File)

	return &ir.Module{
		File:              prog.File,
		Namespace:         namespace,
		ContainerName:     container,
		IsStaticContainer: isStaticContainer(prog, container),
		Imports:           imports,
		Statements:        stmts,
	}
}

func classifyImport(ctx *ProgramContext, imp *surface.ImportDecl) ir.Import {
	kind := ir.ImportRuntimeHostAPI
	switch {
	case strings.HasPrefix(imp.Spec, "."):
		kind = ir.ImportLocal
	default:
		for _, n := range imp.Names {
			if ctx.Types.IsNominalFacade(n.Name) {
				kind = ir.ImportNominalFacade
				break
			}
		}
	}
	names := make([]string, len(imp.Names))
	for i, n := range imp.Names {
		if n.Alias != "" {
			names[i] = n.Alias
		} else {
			names[i] = n.Name
		}
	}
	return ir.Import{Kind: kind, Spec: imp.Spec, Names: names}
}

// isStaticContainer implements spec.md §4.4's "static container module"
// detection: no top-level executable code, at least one export, and no
// class declaration named after the file.
func isStaticContainer(prog *surface.Program, container string) bool {
	if len(prog.Exports) == 0 {
		return false
	}
	for _, d := range prog.Decls {
		if vd, ok := d.(*surface.VarDecl); ok && vd.Init != nil && !isPureLiteralInit(vd.Init) {
			return false // a top-level side-effecting initializer is executable code
		}
		if cd, ok := d.(*surface.ClassDecl); ok && strings.EqualFold(cd.Name, container) {
			return false
		}
	}
	return true
}

func isPureLiteralInit(e surface.Expr) bool {
	switch v := e.(type) {
	case *surface.Literal:
		return true
	case *surface.ArrayLiteral:
		for _, el := range v.Elements {
			if !isPureLiteralInit(el) {
				return false
			}
		}
		return true
	case *surface.ObjectLiteral:
		for _, p := range v.Properties {
			if p.IsMethod || p.IsAccessor || p.IsSpread || p.Computed {
				return false
			}
			if !isPureLiteralInit(p.Value) {
				return false
			}
		}
		return true
	}
	return false
}

// namespaceAndContainer derives the target namespace and container class
// name from a source file path (spec.md §4.4: "synthesis of the module's
// target namespace and container class from the file path"), e.g.
// "src/geometry/shapes.ts" -> namespace "Src.Geometry", container "Shapes".
func namespaceAndContainer(file string) (string, string) {
	trimmed := strings.TrimSuffix(file, extOf(file))
	parts := strings.Split(strings.ReplaceAll(trimmed, "\\", "/"), "/")
	var segs []string
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		segs = append(segs, p)
	}
	if len(segs) == 0 {
		return "", "Module"
	}
	base := pascalCase(segs[len(segs)-1])
	dirSegs := segs[:len(segs)-1]
	nsSegs := make([]string, len(dirSegs))
	for i, s := range dirSegs {
		nsSegs[i] = pascalCase(s)
	}
	return strings.Join(nsSegs, "."), base
}

func extOf(file string) string {
	idx := strings.LastIndex(file, ".")
	slash := strings.LastIndexAny(file, "/\\")
	if idx <= slash {
		return ""
	}
	return file[idx:]
}

func pascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			b.WriteString(p[1:])
		}
	}
	if b.Len() == 0 {
		return s
	}
	return b.String()
}
