package stencil

// Version is recorded in generation metadata and shown by --version.
const Version = "0.1.0"
