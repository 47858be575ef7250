// This file is part of Samclk.
//
// Samclk is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Samclk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Samclk.  If not, see <https://www.gnu.org/licenses/>.

// Package paths contains functions to prepare paths to samclk resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate configuration directory. For example, the path to the
// preferences file:
//
//	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If the base resource directory, ".samclk", is present in the program's
// current directory then that is the base path that will be used. If it is
// not present then the user's config directory is used, as returned by
// os.UserConfigDir(). On a modern Linux system the path returned for the
// example above would be:
//
//	/home/user/.config/samclk/preferences
package paths
