// Package registermember implements member registration by an administrator.
package registermember
