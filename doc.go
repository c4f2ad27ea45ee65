// Package mockshot builds visual documentation for a set of static pages:
// one full-page screenshot per page and viewport, an HTML gallery grouping
// the screenshots by user role, and an A4 PDF printed from that gallery.
//
// # Quick Start
//
//	res, err := mockshot.Generate(ctx, mockshot.Job{
//	    SourceDir: "web/pages",
//	    OutputDir: "mockups",
//	    Sections: []mockshot.RoleSection{
//	        {Role: "Administrador", Files: []string{"admin.html", "dashboard.html"}},
//	        {Role: "Cliente", Files: []string{"tienda.html", "carrito.html"}},
//	    },
//	    Viewports: mockshot.DefaultViewports(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.DocumentPath)
//
// # Pipeline
//
//  1. Resolve: role sections are flattened into distinct pages, in order of
//     first appearance. Declared pages absent from the source are excluded
//     according to the MissingPolicy. Entries such as "reports/*.html" are
//     expanded against the source directory.
//  2. Capture: one headless Chrome tab renders every page at every viewport,
//     sequentially, writing {page}_{viewport}.png.
//  3. Gallery: index.html lists each role with its pages' captures, in
//     declared order. A page shared by several roles is captured once and
//     shown under each of them.
//  4. Document: the gallery is printed to mockups.pdf with backgrounds.
//
// # Configuration
//
// Use functional options on Generate or NewGenerator:
//
//	gen, err := mockshot.NewGenerator(
//	    mockshot.WithTimeout(time.Minute),
//	    mockshot.WithSettleDelay(500*time.Millisecond),
//	    mockshot.WithMissingPolicy(mockshot.MissingFail),
//	    mockshot.WithGalleryOptions(mockshot.WithGalleryTitle("Back office")),
//	)
//	defer gen.Close()
//
// A Generator may run several jobs; Chrome starts on the first capture and
// stops on Close.
//
// # Errors
//
// Failures wrap sentinel errors that can be checked with errors.Is:
//
//   - ErrSourceDir, ErrMissingInput (MissingFail only)
//   - ErrNavigation, ErrCaptureWrite
//   - ErrGalleryWrite, ErrDocumentRender
//   - ErrBrowserConnect, ErrPageCreate
//   - ErrOutputLocked when another run writes to the same directory
//
// A failed run leaves the files it already wrote in place.
//
// # Environment
//
// ROD_BROWSER_BIN selects the Chrome binary. ROD_NO_SANDBOX=1 disables the
// Chrome sandbox, which containers usually require.
package mockshot
