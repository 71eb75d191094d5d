/*
Package fsm defines the intermediate representation shared by the compiler
and every generator: a machine, its ordered states, and their outgoing
transitions.

The types here are pure data. All behavior lives in the packages around
them: internal/compiler builds an Fsm from a YAML document,
internal/validator checks its structural integrity, and internal/generator
renders it to the supported target notations.
*/
package fsm
