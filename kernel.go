// MIT License

package ddkit

// Bit-budget constants for the tagged Edge/node encoding (spec.md §3.1,
// §9 "Complement bit within a tagged handle"). Grounded on the teacher's
// kernel.go _MAXVAR/_MAXREFCOUNT bit-budget constants, adapted to the
// Edge-based layout: Edge reserves its top bit for the terminal marker and
// its bottom bit for the BDD complement bit, leaving 30 bits of
// payload for a node index.

// maxNodeIndex is the largest node-store index an Edge payload can name.
const maxNodeIndex = 1<<30 - 1

// maxVar is the largest variable id the registry can hand out.
const maxVar = 1<<30 - 1

// maxRefcount is the saturating width of the in-node reference counter;
// beyond this the overflow side table in store.go takes over.
const maxRefcount = 1<<16 - 1

// minFreeNodesDefault mirrors the teacher's _MINFREENODES.
const minFreeNodesDefault = 20

// defaultMaxNodeIncrease mirrors the teacher's _DEFAULTMAXNODEINC.
const defaultMaxNodeIncrease = 1 << 20
