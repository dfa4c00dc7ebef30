// Package glrender draws a breakout world with OpenGL 4.1 core in a GLFW
// window. It has no debug panel; the keyboard debug actions still work.
package glrender
